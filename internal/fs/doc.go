// Package fs abstracts the file operations behind blobstore.LocalStore's
// atomic write path so tests can inject failures.
//
//   - [LocalFS]: the os-backed implementation ([Default])
//   - [FaultyFS]: wraps another FileSystem and fails writes, syncs, closes
//     or renames on demand
//
// Tests match rules against file names:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//
// Operations take no context.Context. A local write cannot be interrupted at
// the syscall level; callers check ctx before starting.
package fs
