// Package tweet builds and edits synthetic social-media post records on top
// of pathdoc documents.
package tweet

import (
	"time"

	"github.com/sanity-io/pathdoc"
)

// CreatedAtLayout is the timestamp format of the created_at field.
const CreatedAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

const (
	PathID         = "id"
	PathIDStr      = "id_str"
	PathCreatedAt  = "created_at"
	PathText       = "text"
	PathFullText   = "full_text"
	PathScreenName = "user.screen_name"
	PathGeo        = "geo"
	PathCoords     = "coordinates"
)

func FormatCreatedAt(t time.Time) string {
	return t.Format(CreatedAtLayout)
}

// Template returns a fresh post record with a new ID, the current time and
// the default location.
func Template(gen *IDGenerator, options pathdoc.Options) (*pathdoc.Document, error) {
	id := gen.Next()

	coords, err := point(DefaultLocation.Lon, DefaultLocation.Lat)
	if err != nil {
		return nil, err
	}

	user := pathdoc.NewObject()
	user.Set("screen_name", "")

	root := pathdoc.NewObject()
	root.Set(PathCoords, coords)
	root.Set(PathCreatedAt, FormatCreatedAt(gen.Now()))
	root.Set(PathFullText, "")
	root.Set(PathID, pathdoc.Number(id))
	root.Set(PathIDStr, id)
	root.Set(PathText, "")
	root.Set("user", user)

	return options.New(root)
}

// Draft holds the fields of a simple generated post.
type Draft struct {
	ScreenName string
	Text       string
	// Geo is optional; nil leaves the coordinates out.
	Geo *LatLon
}

// Build creates a post record from a draft. Keys are written in sorted
// order.
func Build(gen *IDGenerator, options pathdoc.Options, draft Draft) (*pathdoc.Document, error) {
	id := gen.Next()

	user := pathdoc.NewObject()
	user.Set("screen_name", draft.ScreenName)

	root := pathdoc.NewObject()
	if draft.Geo != nil {
		coords, err := point(draft.Geo.Lon, draft.Geo.Lat)
		if err != nil {
			return nil, err
		}
		root.Set(PathCoords, coords)
	}
	root.Set(PathFullText, draft.Text)
	root.Set(PathID, pathdoc.Number(id))
	root.Set(PathIDStr, id)
	root.Set(PathText, draft.Text)
	root.Set("user", user)

	return options.New(root)
}

// Stamp fills in what a record needs before it is published: created_at
// unless skipDate is set, and a matching id/id_str pair when id is missing.
// It reports whether anything was added.
func Stamp(doc *pathdoc.Document, gen *IDGenerator, skipDate bool) (bool, error) {
	changed := false

	if !skipDate && !doc.Has(PathCreatedAt) {
		if err := doc.Set(PathCreatedAt, FormatCreatedAt(gen.Now())); err != nil {
			return changed, err
		}
		changed = true
	}

	if !doc.Has(PathID) {
		id := gen.Next()
		if err := doc.Set(PathID, pathdoc.Number(id)); err != nil {
			return changed, err
		}
		if err := doc.Set(PathIDStr, id); err != nil {
			return changed, err
		}
		changed = true
	}

	return changed, nil
}

// SetText writes s to both text and full_text.
func SetText(doc *pathdoc.Document, s string) error {
	if err := doc.Set(PathText, s); err != nil {
		return err
	}
	return doc.Set(PathFullText, s)
}

// Text returns text, falling back to full_text when text is empty or missing.
func Text(doc *pathdoc.Document) string {
	if s, ok := doc.Get(PathText).(string); ok && s != "" {
		return s
	}
	s, _ := doc.Get(PathFullText).(string)
	return s
}

// SetScreenName writes user.screen_name, creating the user object if needed.
func SetScreenName(doc *pathdoc.Document, name string) error {
	if err := doc.EnsurePath("user", pathdoc.KindObject); err != nil {
		return err
	}
	return doc.Set(PathScreenName, name)
}

func ScreenName(doc *pathdoc.Document) string {
	s, _ := doc.Get(PathScreenName).(string)
	return s
}
