/*
Package config manages configuration parsing and validation for reblock.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |           |           |           |
	+-----+-----+ +---+---+ +-----+-----+ +---+---+
	|   YAML    | | JSON  | |    HCL    | |  rc   |
	| Parser    | |Parser | |  Parser   | |(both) |
	+-----------+ +-------+ +-----------+ +-------+

🎯 Purpose:
- Loads .reblock.yaml, .reblock.yml, .reblock.json, .reblock.hcl or .reblockrc
- Fills defaults (《》 markers, search:/replace: keywords, strip normalization, json output)
- Validates the directive syntax, normalization, globs and output format
- Converts settings into directive.Syntax and text.Normalization

🔄 Flow:
1. Resolve picks an explicit path or the first default file in a directory
2. a registered Parser decodes the file by extension
3. Validate applies defaults and rejects unusable values
4. the CLI overrides individual values with flags

🔍 Example:

	cfg, err := config.Resolve(ctx, flagPath, ".")
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	result, err := operation.Transform(ctx, script, code,
		operation.WithSyntax(cfg.DirectiveSyntax()),
		operation.WithNormalization(cfg.Normalization()),
	)
*/
package config
