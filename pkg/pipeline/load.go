package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"
	"os"

	apperrors "github.com/matzehuels/slidegen/pkg/errors"
	"github.com/matzehuels/slidegen/pkg/httputil"
	"github.com/matzehuels/slidegen/pkg/outline"
)

// Load decodes the outline from opts.Data or a local file. Remote inputs
// need a Runner; see [Runner.LoadWithCacheInfo].
func Load(opts Options) (*outline.Outline, error) {
	if opts.Data != nil {
		return decode(opts.Data, opts.InputFormat)
	}
	if apperrors.IsURL(opts.Input) {
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "remote outline %s needs a runner", opts.Input)
	}
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "outline %s not found", opts.Input)
		}
		return nil, fmt.Errorf("read %s: %w", opts.Input, err)
	}
	return decode(data, outline.FormatFromPath(opts.Input))
}

func decode(data []byte, f outline.Format) (*outline.Outline, error) {
	o, err := outline.Parse(data, f)
	if err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// fetch downloads a remote outline. The format comes from the response
// Content-Type, then from the URL path extension.
func fetch(ctx context.Context, client *http.Client, url string) (*outline.Outline, error) {
	doc, err := httputil.Fetch(ctx, client, url)
	if err != nil {
		return nil, err
	}
	f := outline.FormatFromContentType(doc.ContentType)
	if f == outline.FormatJSON {
		if u, err := neturl.Parse(url); err == nil {
			f = outline.FormatFromPath(u.Path)
		}
	}
	return decode(doc.Body, f)
}

// LoadWithCacheInfo loads the outline and reports whether a remote outline
// came from the cache. Fetched outlines are cached as JSON whatever their
// served encoding, so the next read needs no Content-Type.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*outline.Outline, bool, error) {
	if !opts.IsRemote() {
		o, err := Load(opts)
		return o, false, err
	}

	key := r.Keyer.OutlineKey(opts.Input)
	if !opts.Refresh {
		if data, hit := r.get(ctx, "outline", key); hit {
			if o, err := decode(data, outline.FormatJSON); err == nil {
				return o, true, nil
			}
		}
	}

	o, err := fetch(ctx, r.Client, opts.Input)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(o); err == nil {
		r.set(ctx, "outline", key, data, r.OutlineTTL)
	}
	return o, false, nil
}
