/*
Package operation applies search/replace directive scripts to code.

	+-------------+
	|  Directive  |
	|  (Parser)   |
	+------+------+
	       |
	+------+------+      +-------------+
	|  Transform  +------>    text     |
	| (Ordering)  |      | exact/block |
	+------+------+      +-------------+
	       |
	+------+------+
	| ApplyFiles  |
	|  (status)   |
	+-------------+

🎯 Purpose:
- Runs every directive of a script against a buffer, in script order
- Tries an exact substring replacement first, then the whitespace-insensitive
  block matcher with reindentation
- Produces the modified code, a per-run log and per-directive outcomes
- Applies one script to many files concurrently

🔄 Flow:
1. the script is parsed into ordered commands
2. each command sees the buffer as left by the previous one
3. unmatched commands are logged and skipped
4. the result ends with a line break when it is non-empty

⚡ Guarantees:
- Transform keeps no state between calls; each run owns its log.Journal
- parse problems and unmatched directives are log entries, not errors
- ApplyFiles gives every file its own Transform run

🔍 Example:

	result, err := operation.Transform(ctx, script, code)
	if err != nil {
		return err
	}
	fmt.Print(result.ModifiedCode)

	results, err := operation.ApplyFiles(ctx, status.New(root, zerolog.Ctx(ctx)), operation.FileOptions{
		Include: []string{"src/app.py", "src/util.py"},
		Script:  script,
		Backup:  true,
	})
*/
package operation
