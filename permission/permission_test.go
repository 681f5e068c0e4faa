// permission/permission_test.go
package permission_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aclerrors "github.com/aclgraph/aclgraph/errors"
	"github.com/aclgraph/aclgraph/permission"
)

func TestDefaultFactoryFromMask(t *testing.T) {
	f := permission.NewDefaultFactory()

	for _, tc := range []struct {
		mask int32
		want permission.Permission
	}{
		{1, permission.Read},
		{2, permission.Write},
		{4, permission.Create},
		{8, permission.Delete},
		{16, permission.Administration},
	} {
		p, err := f.FromMask(tc.mask)
		require.NoError(t, err)
		assert.Equal(t, tc.want, p)
	}
}

func TestDefaultFactoryUnknownMask(t *testing.T) {
	f := permission.NewDefaultFactory()

	_, err := f.FromMask(3)
	require.ErrorIs(t, err, aclerrors.ErrUnknownMask)

	// Registering the cumulative mask makes it resolvable.
	f.Register(permission.Cumulative(permission.Read, permission.Write))
	p, err := f.FromMask(3)
	require.NoError(t, err)
	assert.Equal(t, int32(3), p.Mask())
}

func TestForMask(t *testing.T) {
	p := permission.ForMask(999)
	assert.Equal(t, int32(999), p.Mask())
}

func TestCumulative(t *testing.T) {
	p := permission.Cumulative(permission.Read, permission.Delete)
	assert.Equal(t, int32(9), p.Mask())
}

func TestStringPattern(t *testing.T) {
	read := permission.Read.String()
	assert.Len(t, read, 32)
	assert.Equal(t, strings.Repeat(".", 31)+"R", read)

	admin := permission.Administration.String()
	assert.Equal(t, strings.Repeat(".", 27)+"A....", admin)
}
