package i18n

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"hallconsole/internal/models"

	"gopkg.in/yaml.v2"
)

// Messages holds every user-facing literal. Nothing outside this package
// should hardcode copy shown to the user.
type Messages struct {
	Previous string `yaml:"previous"`
	Next     string `yaml:"next"`
	Today    string `yaml:"today"`

	CountLabel string `yaml:"count_label"`
	HoursLabel string `yaml:"hours_label"`

	ColumnTitle  string `yaml:"column_title"`
	ColumnName   string `yaml:"column_name"`
	ColumnTime   string `yaml:"column_time"`
	ColumnAction string `yaml:"column_action"`

	Loading    string `yaml:"loading"`
	Empty      string `yaml:"empty"`
	LoadFailed string `yaml:"load_failed"`

	Delete        string `yaml:"delete"`
	ConfirmDelete string `yaml:"confirm_delete"`
	Yes           string `yaml:"yes"`
	No            string `yaml:"no"`

	NewBooking     string `yaml:"new_booking"`
	FieldTitle     string `yaml:"field_title"`
	FieldName      string `yaml:"field_name"`
	FieldEmail     string `yaml:"field_email"`
	FieldStart     string `yaml:"field_start"`
	FieldEnd       string `yaml:"field_end"`
	Submit         string `yaml:"submit"`
	RequiredFields string `yaml:"required_fields"`

	Created      string `yaml:"created"`
	Deleted      string `yaml:"deleted"`
	GenericError string `yaml:"generic_error"`

	AskTitle    string `yaml:"ask_title"`
	AskName     string `yaml:"ask_name"`
	AskStart    string `yaml:"ask_start"`
	AskEnd      string `yaml:"ask_end"`
	InvalidTime string `yaml:"invalid_time"`
	InvalidDate string `yaml:"invalid_date"`
	Cancelled   string `yaml:"cancelled"`

	UnknownCommand string `yaml:"unknown_command"`
	ExportDone     string `yaml:"export_done"`
	ExportFailed   string `yaml:"export_failed"`
	Help           string `yaml:"help"`
	BotHelp        string `yaml:"bot_help"`
}

// Catalog is a display language: calendar names, the long date template and copy.
type Catalog struct {
	Locale   string   `yaml:"locale"`
	Weekdays []string `yaml:"weekdays"` // Sunday first
	Months   []string `yaml:"months"`   // January first
	LongDate string   `yaml:"long_date"`
	Messages Messages `yaml:"messages"`
}

// IsKnown reports whether a built-in catalog exists for locale.
func IsKnown(locale string) bool {
	_, ok := builtins[strings.ToLower(strings.TrimSpace(locale))]
	return ok
}

// Builtin returns a copy of the built-in catalog for locale.
func Builtin(locale string) (*Catalog, bool) {
	c, ok := builtins[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		return nil, false
	}
	return c.clone(), true
}

// Load picks the built-in catalog for locale and overlays path when set.
// An unknown locale is only accepted together with a catalog file, which
// then starts from the English copy.
func Load(locale, path string) (*Catalog, error) {
	base, ok := Builtin(locale)
	if !ok {
		if path == "" {
			return nil, fmt.Errorf("unknown locale %q", locale)
		}
		base, _ = Builtin("en")
		base.Locale = locale
	}
	if path == "" {
		return base, nil
	}
	return LoadFile(path, base)
}

// LoadFile overlays the keys present in the YAML file onto base.
func LoadFile(path string, base *Catalog) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale file: %w", err)
	}

	out := base.clone()
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("parse locale file: %w", err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("locale file %s: %w", path, err)
	}
	return out, nil
}

func (c *Catalog) Validate() error {
	if len(c.Weekdays) != 7 {
		return fmt.Errorf("weekdays: want 7 names, got %d", len(c.Weekdays))
	}
	if len(c.Months) != 12 {
		return fmt.Errorf("months: want 12 names, got %d", len(c.Months))
	}
	if c.LongDate == "" {
		return fmt.Errorf("long_date template is empty")
	}
	return nil
}

// FormatLongDate renders weekday, day, month and year through the LongDate template.
func (c *Catalog) FormatLongDate(d models.Day) string {
	r := strings.NewReplacer(
		"{weekday}", c.Weekdays[int(d.Weekday())],
		"{day}", fmt.Sprintf("%02d", d.Day),
		"{month}", c.Months[int(d.Month)-1],
		"{year}", strconv.Itoa(d.Year),
	)
	return r.Replace(c.LongDate)
}

// Failure picks the API-provided message when there is one, else the generic fallback.
func (c *Catalog) Failure(apiMessage string) string {
	if strings.TrimSpace(apiMessage) != "" {
		return apiMessage
	}
	return c.Messages.GenericError
}

func (c *Catalog) clone() *Catalog {
	out := *c
	out.Weekdays = append([]string(nil), c.Weekdays...)
	out.Months = append([]string(nil), c.Months...)
	return &out
}
