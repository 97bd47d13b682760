// Package pkg holds the slidegen libraries.
//
// # Data flow
//
//	JSON / TOML / YAML outline
//	         ↓
//	    [outline] (decode and validate records)
//	         ↓
//	    [markdown] + [highlight] (classify content, parse tables, color code)
//	         ↓
//	    [deck] (positioned shapes per slide)
//	         ↓
//	    [render/sink] (PPTX, JSON, markdown preview)
//
// [pipeline] runs these stages with caching ([cache]) and fetching of
// remote outlines ([httputil]). [config] maps the TOML settings file onto a
// [deck.Theme], [errors] carries structured error codes, and
// [observability] lets callers hook into every stage.
//
// # Quick start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Input: "talk.json"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("talk.pptx", res.Artifacts[pipeline.FormatPPTX], 0o644)
package pkg
