package i18n

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hallconsole/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsAreComplete(t *testing.T) {
	for locale := range builtins {
		t.Run(locale, func(t *testing.T) {
			c, ok := Builtin(locale)
			require.True(t, ok)
			require.NoError(t, c.Validate())
			assert.NotEmpty(t, c.Messages.Empty)
			assert.NotEmpty(t, c.Messages.Loading)
			assert.NotEmpty(t, c.Messages.LoadFailed)
			assert.NotEmpty(t, c.Messages.GenericError)
			assert.NotEmpty(t, c.Messages.ConfirmDelete)
		})
	}
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown("ar"))
	assert.True(t, IsKnown(" EN "))
	assert.False(t, IsKnown("fr"))
}

func TestFormatLongDate(t *testing.T) {
	day := models.Day{Year: 2024, Month: time.March, Day: 1}

	en, _ := Builtin("en")
	assert.Equal(t, "Friday, 01 March 2024", en.FormatLongDate(day))

	ar, _ := Builtin("ar")
	assert.Equal(t, "الجمعة، 01 مارس 2024", ar.FormatLongDate(day))
}

func TestBuiltinReturnsCopy(t *testing.T) {
	c, _ := Builtin("en")
	c.Weekdays[0] = "Changed"
	c.Messages.Empty = "changed"

	fresh, _ := Builtin("en")
	assert.Equal(t, "Sunday", fresh.Weekdays[0])
	assert.Equal(t, "No bookings this day.", fresh.Messages.Empty)
}

func TestFailure(t *testing.T) {
	c, _ := Builtin("en")
	assert.Equal(t, "Overlaps existing booking", c.Failure("Overlaps existing booking"))
	assert.Equal(t, c.Messages.GenericError, c.Failure("  "))
}

func TestLoad(t *testing.T) {
	t.Run("BuiltinOnly", func(t *testing.T) {
		c, err := Load("ar", "")
		require.NoError(t, err)
		assert.Equal(t, "ar", c.Locale)
	})

	t.Run("UnknownWithoutFile", func(t *testing.T) {
		_, err := Load("fr", "")
		assert.Error(t, err)
	})

	t.Run("OverlayKeepsMissingKeys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fr.yaml")
		content := `
locale: fr
weekdays: [dimanche, lundi, mardi, mercredi, jeudi, vendredi, samedi]
months: [janvier, février, mars, avril, mai, juin, juillet, août, septembre, octobre, novembre, décembre]
long_date: "{weekday} {day} {month} {year}"
messages:
  empty: "Aucune réservation ce jour."
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		c, err := Load("fr", path)
		require.NoError(t, err)
		assert.Equal(t, "fr", c.Locale)
		assert.Equal(t, "Aucune réservation ce jour.", c.Messages.Empty)
		assert.Equal(t, "Loading...", c.Messages.Loading)
		assert.Equal(t, "vendredi 01 mars 2024", c.FormatLongDate(models.Day{Year: 2024, Month: time.March, Day: 1}))
	})

	t.Run("BadWeekdays", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("weekdays: [one, two]\n"), 0o644))
		_, err := Load("en", path)
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load("en", filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
