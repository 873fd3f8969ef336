// Package release manages the on-disk release store: the versioned
// release directories under releases/, the monotonic version sequence,
// the atomically repointed "current" symlink, and retention pruning.
//
// Releases are immutable once provisioned; the only mutation the store
// performs on an existing release is deleting it during pruning. The
// current symlink is the single source of truth for which release is
// active, and is switched with a rename so concurrent readers never
// observe a missing pointer.
package release
