// Package httputil downloads remote outlines.
//
// [Fetch] issues a GET with retry: network errors, 429, and 5xx responses
// are retried with exponential backoff, other 4xx responses fail at once.
// Bodies are size-limited.
//
//	doc, err := httputil.Fetch(ctx, nil, "https://example.com/talk.json")
//	if err != nil {
//	    return err
//	}
//	o, err := outline.Parse(doc.Body, outline.FormatFromPath(doc.URL))
package httputil
