package httpapi_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vendra-hq/vendra-sdk/pkg/httpapi"
	"github.com/vendra-hq/vendra-sdk/pkg/serrors"
)

func TestParseTimeQuery(t *testing.T) {
	t.Run("absent is nil", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/menu-categories", nil)
		v, err := httpapi.ParseTimeQuery(r, "createdFrom")
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("rfc3339 value", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/menu-categories?createdFrom=2026-08-01T00:00:00Z", nil)
		v, err := httpapi.ParseTimeQuery(r, "createdFrom")
		require.NoError(t, err)
		require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), v.UTC())
	})

	t.Run("malformed date is a bad request", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/menu-categories?createdFrom=yesterday", nil)
		_, err := httpapi.ParseTimeQuery(r, "createdFrom")
		require.Error(t, err)
		require.Equal(t, serrors.KindBadRequest, serrors.KindOf(err))
		require.EqualError(t, err, "createdFrom must be an RFC 3339 timestamp")
	})

	t.Run("date without time is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/menu-categories?createdTo=2026-08-01", nil)
		_, err := httpapi.ParseTimeQuery(r, "createdTo")
		require.Equal(t, serrors.KindBadRequest, serrors.KindOf(err))
	})
}

func TestParseBoolQuery(t *testing.T) {
	t.Run("absent is nil", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/menu-items", nil)
		v, err := httpapi.ParseBoolQuery(r, "isAvailable")
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("true and false", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/menu-items?isAvailable=true", nil)
		v, err := httpapi.ParseBoolQuery(r, "isAvailable")
		require.NoError(t, err)
		require.True(t, *v)

		r = httptest.NewRequest("GET", "/menu-items?isAvailable=false", nil)
		v, err = httpapi.ParseBoolQuery(r, "isAvailable")
		require.NoError(t, err)
		require.False(t, *v)
	})

	t.Run("garbage is a bad request", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/menu-items?isAvailable=maybe", nil)
		_, err := httpapi.ParseBoolQuery(r, "isAvailable")
		require.Equal(t, serrors.KindBadRequest, serrors.KindOf(err))
	})
}

func TestParseInt64Query(t *testing.T) {
	r := httptest.NewRequest("GET", "/menu-items?menuId=7", nil)
	v, err := httpapi.ParseInt64Query(r, "menuId")
	require.NoError(t, err)
	require.Equal(t, int64(7), *v)

	r = httptest.NewRequest("GET", "/menu-items?menuId=seven", nil)
	_, err = httpapi.ParseInt64Query(r, "menuId")
	require.Equal(t, serrors.KindBadRequest, serrors.KindOf(err))
}
