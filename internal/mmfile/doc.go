// Package mmfile loads VDF files for decoding. On unix systems the file is
// memory-mapped read-only so that large appinfo.vdf caches are paged in on
// demand; elsewhere the file is read into memory.
package mmfile

func noop() error { return nil }
