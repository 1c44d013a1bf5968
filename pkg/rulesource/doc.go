// Package rulesource loads rule spec documents from where they are kept:
// files embedded in the binary or on disk, an S3 bucket, or Redis.
//
// Every source implements Source and maps a key such as "main-form" to a raw
// YAML document; LoadSpec decodes it with pkg/ruleset.
//
//	src := rulesource.Cached(rulesource.NewFSSource(os.DirFS("rules"), ""), 64)
//	spec, err := rulesource.LoadSpec(ctx, src, "main-form",
//	    ruleset.WithNamedPatterns(ruleset.DefaultNamedPatterns()))
//	if rulesource.IsNotFound(err) {
//	    // no rules for this form
//	}
//
// File and object sources read "<prefix>/<key>.yaml". Keys must be relative
// and may not contain "." or ".." segments.
//
// S3Source talks to the bucket through the S3Client interface so tests and
// S3-compatible services can supply their own client. RedisSource reads keys
// published with pkg/redis Store.
package rulesource
