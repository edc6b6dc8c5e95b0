package cli

import (
	"errors"
	"fmt"

	"ideabox-cli/internal/ideas"
	"ideabox-cli/internal/store"
)

type saveFailedError struct {
	err error
}

func (e saveFailedError) Error() string {
	return fmt.Sprintf("change applied but not saved: %v", e.err)
}

func (e saveFailedError) Unwrap() error { return e.err }

// checkSaved turns a failed background save into a command error, so scripts
// see a non-zero exit even though the mutation itself succeeded.
func checkSaved(repo *ideas.Repository) error {
	if err := repo.LastSaveErr(); err != nil {
		return saveFailedError{err: err}
	}
	return nil
}

var errStoreUnreadable = errors.New("store could not be read; refusing to write over it (run `ideabox doctor`)")

// checkWritable refuses mutations when the store loaded as unavailable or
// corrupt; a save would otherwise replace whatever is on disk with an empty
// collection plus the change.
func checkWritable(repo *ideas.Repository) error {
	switch repo.LoadResult() {
	case store.LoadOK, store.LoadMissing:
		return nil
	}
	return fmt.Errorf("%w: %s", errStoreUnreadable, repo.LoadResult())
}
