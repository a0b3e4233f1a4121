// Package flag declares the typed command-line flags leaf commands register.
// Each flag's name must match a json tag on the command's flags struct.
package flag

import (
	"encoding/csv"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type Flag interface {
	Init(cmd *cobra.Command) error
	GetName() string
	ParseValue(v string) (any, error)
}

// Verify that the flag types implement the Flag interface
var _ = []Flag{
	StringFlag{},
	BooleanFlag{},
	IntFlag{},
	EnumFlag{},
	StringSliceFlag{},
}

type StringFlag struct {
	Name, Shorthand, Description string
	Required, Hidden             bool
	DefaultValue                 string
	DeprecationMessage           string
}

func (f StringFlag) Init(cmd *cobra.Command) error {
	cmd.Flags().StringP(f.Name, f.Shorthand, f.DefaultValue, f.Description)
	return mark(cmd, f.Name, f.Required, f.Hidden, f.DeprecationMessage)
}

func (f StringFlag) GetName() string { return f.Name }

func (f StringFlag) ParseValue(v string) (any, error) {
	return v, nil
}

type BooleanFlag struct {
	Name, Shorthand, Description string
	Hidden                       bool
	DefaultValue                 bool
}

func (f BooleanFlag) Init(cmd *cobra.Command) error {
	cmd.Flags().BoolP(f.Name, f.Shorthand, f.DefaultValue, f.Description)
	return mark(cmd, f.Name, false, f.Hidden, "")
}

func (f BooleanFlag) GetName() string { return f.Name }

func (f BooleanFlag) ParseValue(v string) (any, error) {
	return strconv.ParseBool(v)
}

type IntFlag struct {
	Name, Shorthand, Description string
	Required, Hidden             bool
	DefaultValue                 int
}

func (f IntFlag) Init(cmd *cobra.Command) error {
	cmd.Flags().IntP(f.Name, f.Shorthand, f.DefaultValue, f.Description)
	return mark(cmd, f.Name, f.Required, f.Hidden, "")
}

func (f IntFlag) GetName() string { return f.Name }

func (f IntFlag) ParseValue(v string) (any, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q for --%s, expected an integer", v, f.Name)
	}
	return n, nil
}

// EnumFlag accepts one of AllowedValues. An empty DefaultValue leaves the flag
// unset so the command can fall back to configuration.
type EnumFlag struct {
	Name, Shorthand, Description string
	Required, Hidden             bool
	DefaultValue                 string
	AllowedValues                []string
	DeprecationMessage           string
}

func (f EnumFlag) Init(cmd *cobra.Command) error {
	if len(f.AllowedValues) == 0 {
		return fmt.Errorf("flag --%s has no allowed values", f.Name)
	}
	if f.DefaultValue != "" && !slices.Contains(f.AllowedValues, f.DefaultValue) {
		return fmt.Errorf("default value %q of --%s is not one of %v", f.DefaultValue, f.Name, f.AllowedValues)
	}

	description := fmt.Sprintf("%s (available options: [%s])", f.Description, strings.Join(f.AllowedValues, ", "))
	cmd.Flags().StringP(f.Name, f.Shorthand, f.DefaultValue, description)
	return mark(cmd, f.Name, f.Required, f.Hidden, f.DeprecationMessage)
}

func (f EnumFlag) GetName() string { return f.Name }

func (f EnumFlag) ParseValue(v string) (any, error) {
	if v != "" && !slices.Contains(f.AllowedValues, v) {
		return nil, fmt.Errorf("invalid value %q for --%s, expected one of %v", v, f.Name, f.AllowedValues)
	}
	return v, nil
}

type StringSliceFlag struct {
	Name, Shorthand, Description string
	Required, Hidden             bool
	DefaultValue                 []string
}

func (f StringSliceFlag) Init(cmd *cobra.Command) error {
	cmd.Flags().StringSliceP(f.Name, f.Shorthand, f.DefaultValue, f.Description+" (comma-separated list)")
	return mark(cmd, f.Name, f.Required, f.Hidden, "")
}

func (f StringSliceFlag) GetName() string { return f.Name }

// ParseValue reads the "[a,b]" form pflag prints slice values in.
func (f StringSliceFlag) ParseValue(v string) (any, error) {
	v = strings.TrimSuffix(strings.TrimPrefix(v, "["), "]")
	if v == "" {
		return []string{}, nil
	}

	values, err := csv.NewReader(strings.NewReader(v)).Read()
	if err != nil {
		return nil, fmt.Errorf("invalid value for --%s: %w", f.Name, err)
	}
	return values, nil
}

func mark(cmd *cobra.Command, name string, required, hidden bool, deprecation string) error {
	if required {
		if err := cmd.MarkFlagRequired(name); err != nil {
			return err
		}
	}
	if hidden {
		if err := cmd.Flags().MarkHidden(name); err != nil {
			return err
		}
	}
	if deprecation != "" {
		return cmd.Flags().MarkDeprecated(name, deprecation)
	}
	return nil
}
