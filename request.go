package libdiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zero-day-ai/libdiff/differr"
)

// Request names the snapshots a Service call compares. Each call reads only
// the fields it needs.
type Request struct {
	FirstVersion  string `json:"firstVersion" validate:"required"`
	SecondVersion string `json:"secondVersion" validate:"required"`
	FirstLibrary  string `json:"firstLibrary,omitempty" validate:"required"`
	SecondLibrary string `json:"secondLibrary,omitempty" validate:"required"`
	LibraryRef    string `json:"libraryRef,omitempty" validate:"required"`
}

var validate = validator.New()

var (
	versionFields  = []string{"FirstVersion", "SecondVersion"}
	libraryFields  = []string{"FirstVersion", "SecondVersion", "FirstLibrary", "SecondLibrary"}
	specificFields = []string{"FirstVersion", "SecondVersion", "LibraryRef"}
)

// check validates the named fields of r.
func (r Request) check(op string, fields ...string) error {
	err := validate.StructPartial(r, fields...)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return differr.NewInvalidArgument(op, fmt.Errorf("%w: %v", differr.ErrInvalidRequest, err))
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return differr.NewInvalidArgument(op,
		fmt.Errorf("%w: missing %s", differr.ErrInvalidRequest, strings.Join(missing, ", ")))
}
