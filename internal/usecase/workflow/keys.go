package workflow

import (
	"fmt"
	"path"
	"strings"

	"github.com/jaevor/go-nanoid"
)

var newID = func() func() string {
	gen, err := nanoid.Standard(21)
	if err != nil {
		panic(err)
	}
	return gen
}()

// NewID returns a record id.
func NewID() string {
	return newID()
}

// ObjectKey builds the storage key of an attachment, keeping the file extension.
func ObjectKey(scope, ownerID, kind, id, filename string) string {
	return fmt.Sprintf("%s/%s/%s/%s%s", scope, ownerID, kind, id, strings.ToLower(path.Ext(filename)))
}
