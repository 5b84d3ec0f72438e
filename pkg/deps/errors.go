package deps

import (
	"fmt"

	"github.com/matzehuels/noticecheck/pkg/errors"
)

// UnlicensedError reports a dependency that carries neither a license
// identifier nor a license file, and has no override. Such dependencies
// are never skipped.
type UnlicensedError struct {
	Name string
}

func (e *UnlicensedError) Error() string {
	return fmt.Sprintf("no license found for %s", e.Name)
}

// Code returns [errors.ErrCodeUnlicensed].
func (e *UnlicensedError) Code() errors.Code { return errors.ErrCodeUnlicensed }
