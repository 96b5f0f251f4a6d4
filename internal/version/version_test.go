package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "1.2.3", want: "1.2.3"},
		{raw: "v1.2.3", want: "1.2.3"},
		{raw: " 2.0.0 ", want: "2.0.0"},
		{raw: "3.0.0-beta.1", want: "3.0.0-beta.1"},
		{raw: "1.2", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "latest", wantErr: true},
		{raw: "1.2.3+build.5", wantErr: true},
		{raw: "01.2.3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := Parse("to", tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidVersion))
				var invalid *InvalidVersionError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, "to", invalid.Arg)
				assert.Contains(t, err.Error(), "to version")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestCompare_PrereleaseSortsBeforeRelease(t *testing.T) {
	ordered := []string{"0.9.0", "1.0.0-alpha", "1.0.0-beta.2", "1.0.0", "1.0.1", "1.10.0", "2.0.0"}
	for i := 0; i < len(ordered)-1; i++ {
		a := MustParse(ordered[i])
		b := MustParse(ordered[i+1])
		assert.True(t, a.Less(b), "%s < %s", a, b)
		assert.Equal(t, 1, b.Compare(a))
	}
	assert.True(t, MustParse("v1.0.0").Equal(MustParse("1.0.0")))
}

func TestCompare_ZeroVersionIsEarliest(t *testing.T) {
	var zero Version
	assert.True(t, zero.IsZero())
	assert.Equal(t, -1, zero.Compare(MustParse("0.0.1")))
	assert.Equal(t, 0, zero.Compare(Version{}))
	assert.Equal(t, "", zero.String())
}

func TestNormalizeAndSentinels(t *testing.T) {
	got, err := Normalize("v4.5.6")
	require.NoError(t, err)
	assert.Equal(t, "4.5.6", got)

	assert.True(t, IsLatest("LATEST"))
	assert.True(t, IsLatest(" latest "))
	assert.False(t, IsLatest("1.0.0"))
	assert.True(t, IsDev("dev"))
	assert.True(t, IsDev(""))
	assert.False(t, IsDev("1.0.0"))
}

func TestTextRoundTrip(t *testing.T) {
	var v Version
	require.NoError(t, v.UnmarshalText([]byte("v2.1.0")))
	text, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", string(text))
	assert.Error(t, v.UnmarshalText([]byte("nope")))
}
