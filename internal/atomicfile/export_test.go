package atomicfile

// WithBeforeRename runs hook once the temporary file is complete, right before the rename.
// An error returned by hook aborts the write as a crash would.
func WithBeforeRename(hook func(tmp string) error) Option {
	return func(o *options) {
		o.beforeRename = hook
	}
}

// TempName exposes the temporary file naming for tests.
var TempName = tempName
