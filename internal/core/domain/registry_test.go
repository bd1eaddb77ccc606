package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendImpl(crate, text string, types ...string) Implementor {
	return Implementor{
		Crate:         crate,
		TraitPath:     "core::marker::Send",
		Text:          text,
		Applicability: ClassifyApplicability(text),
		TypePaths:     types,
	}
}

// TestRegistry_Register tests basic record registration
func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry("core::marker::Send")

	err := reg.Register(sendImpl("actix_http", "impl !Send for Extensions", "actix_http::extensions::Extensions"))
	require.NoError(t, err)

	err = reg.Register(sendImpl("actix_http", "impl Send for Protocol", "actix_http::Protocol"))
	require.NoError(t, err)

	err = reg.Register(sendImpl("actix_web", "impl !Send for ResourceMap", "actix_web::rmap::ResourceMap"))
	require.NoError(t, err)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"actix_http", "actix_web"}, reg.Crates())
	assert.Len(t, reg.Records("actix_http"), 2)
	assert.Len(t, reg.Records("actix_web"), 1)
}

// TestRegistry_Register_EmptyCrate tests rejection of empty crate keys
func TestRegistry_Register_EmptyCrate(t *testing.T) {
	reg := NewRegistry("core::marker::Send")

	err := reg.Register(sendImpl("", "impl Send for Range"))
	assert.ErrorIs(t, err, ErrEmptyCrate)
	assert.Equal(t, 0, reg.Len())
}

// TestRegistry_Register_EmptySignature tests rejection of blank signatures
func TestRegistry_Register_EmptySignature(t *testing.T) {
	reg := NewRegistry("core::marker::Send")

	err := reg.Register(sendImpl("actix_http", "   "))
	assert.ErrorIs(t, err, ErrEmptySignature)
}

// TestRegistry_Register_Duplicate tests duplicate signature rejection per crate
func TestRegistry_Register_Duplicate(t *testing.T) {
	reg := NewRegistry("core::marker::Send")

	require.NoError(t, reg.Register(sendImpl("actix_http", "impl Send for Protocol")))

	err := reg.Register(sendImpl("actix_http", "impl Send for Protocol"))
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	// Whitespace differences normalise to the same key.
	err = reg.Register(sendImpl("actix_http", "impl  Send\tfor Protocol"))
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	assert.Equal(t, 1, reg.Len())
}

// TestRegistry_Register_SameSignatureDifferentCrates tests that crates dedupe independently
func TestRegistry_Register_SameSignatureDifferentCrates(t *testing.T) {
	reg := NewRegistry("core::marker::Send")

	require.NoError(t, reg.Register(sendImpl("actix_http", "impl Send for Error")))
	require.NoError(t, reg.Register(sendImpl("actix_web", "impl Send for Error")))

	assert.Equal(t, 2, reg.Len())
	assert.True(t, reg.Contains("actix_http", "impl Send for Error"))
	assert.True(t, reg.Contains("actix_web", "impl Send for Error"))
}

// TestRegistry_Merge tests folding registries together
func TestRegistry_Merge(t *testing.T) {
	base := NewRegistry("core::marker::Send")
	require.NoError(t, base.Register(sendImpl("actix_http", "impl !Send for Extensions")))

	incoming := NewRegistry("core::marker::Send")
	require.NoError(t, incoming.Register(sendImpl("actix_http", "impl !Send for Extensions")))
	require.NoError(t, incoming.Register(sendImpl("actix_http", "impl Send for Protocol")))
	require.NoError(t, incoming.Register(sendImpl("awc", "impl !Send for Client")))

	added := base.Merge(incoming)

	assert.Equal(t, 2, added)
	assert.Equal(t, 3, base.Len())
	assert.Equal(t, []string{"actix_http", "awc"}, base.Crates())
}

// TestRegistry_Merge_Idempotent tests that merging twice adds nothing
func TestRegistry_Merge_Idempotent(t *testing.T) {
	base := NewRegistry("core::marker::Send")
	incoming := NewRegistry("core::marker::Send")
	require.NoError(t, incoming.Register(sendImpl("actix_http", "impl Send for Protocol")))

	assert.Equal(t, 1, base.Merge(incoming))
	assert.Equal(t, 0, base.Merge(incoming))
	assert.Equal(t, 1, base.Len())
}

// TestRegistry_Merge_Nil tests merging a nil registry
func TestRegistry_Merge_Nil(t *testing.T) {
	base := NewRegistry("core::marker::Send")
	assert.Equal(t, 0, base.Merge(nil))
}

// TestRegistry_Records_Copy tests that Records returns an independent slice
func TestRegistry_Records_Copy(t *testing.T) {
	reg := NewRegistry("core::marker::Send")
	require.NoError(t, reg.Register(sendImpl("actix_http", "impl Send for Protocol")))

	recs := reg.Records("actix_http")
	recs[0].Text = "mutated"

	assert.Equal(t, "impl Send for Protocol", reg.Records("actix_http")[0].Text)
}

// TestRegistry_Records_UnknownCrate tests lookup of an absent crate
func TestRegistry_Records_UnknownCrate(t *testing.T) {
	reg := NewRegistry("core::marker::Send")
	assert.Nil(t, reg.Records("nope"))
}

// TestRegistry_Canonicalize tests deterministic record ordering
func TestRegistry_Canonicalize(t *testing.T) {
	left := NewRegistry("core::marker::Send")
	right := NewRegistry("core::marker::Send")

	impls := []Implementor{
		sendImpl("actix_http", "impl Send for Protocol", "actix_http::Protocol"),
		sendImpl("actix_http", "impl !Send for Extensions", "actix_http::extensions::Extensions"),
		sendImpl("actix_http", "impl<B> Send for Response<B>", "actix_http::response::Response"),
	}

	// Insert in opposite orders.
	for _, imp := range impls {
		require.NoError(t, left.Register(imp))
	}
	for i := len(impls) - 1; i >= 0; i-- {
		require.NoError(t, right.Register(impls[i]))
	}

	left.Canonicalize()
	right.Canonicalize()

	assert.Equal(t, left.Records("actix_http"), right.Records("actix_http"))

	texts := make([]string, 0, 3)
	for _, rec := range left.Records("actix_http") {
		texts = append(texts, rec.Text)
	}
	assert.Equal(t, []string{
		"impl !Send for Extensions",
		"impl Send for Protocol",
		"impl<B> Send for Response<B>",
	}, texts)
}
