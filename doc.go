// Package postbuild compiles templated markdown posts into publishable
// markdown.
//
// # Quick Start
//
//	c := postbuild.NewCompiler(
//	    postbuild.WithLogger(logger),
//	)
//	results, err := c.CompileAll(ctx, "templates", "build")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range results {
//	    fmt.Println(r.OutputPath)
//	}
//
// # Compilation Pipeline
//
// Each post source goes through these stages:
//
//  1. Template rendering with post_number and current_tag (pongo2)
//  2. Leading and trailing whitespace trimmed
//  3. Table of contents replaces the <!-- wotw_toc --> marker line
//  4. Blank line runs collapsed, padding before closing fences removed
//  5. Written to the build directory, optionally with an HTML rendering
//
// Posts are compiled one at a time in name order. The first failure stops
// the batch; posts written before it stay on disk.
//
// # Post Files
//
// Sources are discovered as post-*<ext> in the template directory, where
// ext defaults to ".j2". The second dash-separated field of the name is
// the post number:
//
//	post-7-caching.md.j2  ->  number 7, tag "post-7-caching", output "post-7-caching.md"
//
// # Error Handling
//
// Errors wrap sentinel values, so callers can match them with errors.Is:
//
//	if errors.Is(err, postbuild.ErrRender) {
//	    // template or helper failure
//	}
package postbuild
