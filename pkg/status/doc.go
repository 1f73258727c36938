/*
Package status manages file storage and status tracking for reblock runs.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Labels |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads and atomically rewrites files selected by a files run
- Keeps .bak copies and restores them on request
- Tracks what happened to each file (modified, unchanged, preview, error)
- Measures changes as inserted/deleted lines and unified diffs

🔄 Flow:
1. operation reads a file through the Manager
2. the transformed content goes back through WriteFileAtomic (unless dry run)
3. the outcome is recorded with TrackFile
4. the CLI lists tracked files and renders them with StatusLabel/CountsLabel

🤝 Interfaces:
- FileManager: file reads, atomic writes, backups
- StatusReporter: status tracking and progress
- FileFormatter: log message formatting

🔍 Example:

	mgr := status.New(root, zerolog.Ctx(ctx))

	content, err := mgr.ReadFile(ctx, "main.py")
	err = mgr.BackupFile(ctx, "main.py")
	err = mgr.WriteFileAtomic(ctx, "main.py", updated)

	ins, del := status.ChangeStats(string(content), string(updated))
	mgr.TrackFile(ctx, "main.py", status.FileInfo{Status: status.StatusModified, Inserted: ins, Deleted: del})
*/
package status
