package flag

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumFlag_Init(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    EnumFlag
		wantErr bool
	}{
		{"valid", EnumFlag{Name: "differ", AllowedValues: []string{"lcs", "myers"}, DefaultValue: "lcs"}, false},
		{"no values", EnumFlag{Name: "differ", DefaultValue: "lcs"}, true},
		{"default not allowed", EnumFlag{Name: "differ", AllowedValues: []string{"lcs"}, DefaultValue: "patience"}, true},
		{"required without default", EnumFlag{Name: "differ", AllowedValues: []string{"lcs"}, Required: true}, false},
		{"optional without default", EnumFlag{Name: "differ", AllowedValues: []string{"lcs"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.flag.Init(&cobra.Command{Use: "test"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnumFlag_ParseValue(t *testing.T) {
	t.Parallel()

	f := EnumFlag{Name: "format", AllowedValues: []string{"text", "json"}, DefaultValue: "text"}

	v, err := f.ParseValue("json")
	require.NoError(t, err)
	assert.Equal(t, "json", v)

	_, err = f.ParseValue("xml")
	assert.ErrorContains(t, err, "--format")
}

func TestStringSliceFlag_ParseValue(t *testing.T) {
	t.Parallel()

	f := StringSliceFlag{Name: "paths"}

	v, err := f.ParseValue("[]")
	require.NoError(t, err)
	assert.Equal(t, []string{}, v)

	v, err = f.ParseValue("[a.txt,b/c.md]")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b/c.md"}, v)
}

func TestRequiredFlag(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	require.NoError(t, StringFlag{Name: "base", Required: true}.Init(cmd))

	f := cmd.Flags().Lookup("base")
	require.NotNil(t, f)
	assert.Equal(t, []string{"true"}, f.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestEnumFlag_DescriptionListsValues(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	require.NoError(t, EnumFlag{Name: "choice", Description: "side to keep", AllowedValues: []string{"remote", "local"}}.Init(cmd))

	assert.Equal(t, "side to keep (available options: [remote, local])", cmd.Flags().Lookup("choice").Usage)
}

func TestIntFlag_ParseValue(t *testing.T) {
	t.Parallel()

	f := IntFlag{Name: "concurrency"}

	v, err := f.ParseValue("4")
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	_, err = f.ParseValue("four")
	assert.ErrorContains(t, err, "--concurrency")
}

func TestDeprecatedFlag(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	require.NoError(t, StringFlag{Name: "output", DeprecationMessage: "use --out instead"}.Init(cmd))

	assert.Equal(t, "use --out instead", cmd.Flags().Lookup("output").Deprecated)
}
