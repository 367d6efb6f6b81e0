package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/xptrack/internal/tracker"
)

// document is the persisted form of a user. Streaks and level are never
// stored; both are rebuilt from tasks on load.
type document struct {
	Tasks []taskDocument `json:"tasks"`
	XP    int            `json:"xp"`
	Stats map[string]int `json:"stats"`
}

type taskDocument struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Stat     string `json:"stat"`
	Duration int    `json:"duration"`
	Date     string `json:"date"`
	Outside  bool   `json:"outside"`
}

const profileSchemaURL = "schema://profile.json"

// profileSchemaJSON constrains documents before any field is trusted. The
// duration maximum is filled in from tracker.MaxDuration.
// Unknown top-level keys (older front ends wrote "streaks" and "level")
// are allowed and ignored.
const profileSchemaJSON = `{
  "type": "object",
  "required": ["tasks", "xp", "stats"],
  "properties": {
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "category", "stat", "duration", "date"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "category": {"type": "string"},
          "stat": {"enum": ["Body", "Mind", "Art", "Tech", "Home", "Spirit"]},
          "duration": {"type": "integer", "minimum": 1, "maximum": %d},
          "date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
          "outside": {"type": "boolean"}
        }
      }
    },
    "xp": {"type": "integer", "minimum": 0},
    "stats": {
      "type": "object",
      "propertyNames": {"enum": ["Body", "Mind", "Art", "Tech", "Home", "Spirit"]},
      "additionalProperties": {"type": "integer", "minimum": 0}
    }
  }
}`

var profileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	src := fmt.Sprintf(profileSchemaJSON, tracker.MaxDuration)
	if err := json.Unmarshal([]byte(src), &def); err != nil {
		return nil, fmt.Errorf("parse profile schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(profileSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(profileSchemaURL)
})

func encodeUser(u *tracker.User) ([]byte, error) {
	doc := document{
		Tasks: make([]taskDocument, 0, u.Len()),
		XP:    u.XP(),
		Stats: make(map[string]int, len(tracker.AllStats())),
	}
	for _, t := range u.Tasks() {
		doc.Tasks = append(doc.Tasks, taskDocument{
			Name:     t.Name,
			Category: t.Category,
			Stat:     string(t.Stat),
			Duration: t.Duration,
			Date:     t.Date.Format(tracker.DateLayout),
			Outside:  t.Outside,
		})
	}
	for s, v := range u.Stats() {
		doc.Stats[string(s)] = v
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return append(b, '\n'), nil
}

// decodeUser validates raw against the profile schema and replays its task
// log. Stored totals that disagree with the replay are logged and dropped.
func decodeUser(key string, raw []byte, rules tracker.Rules, logger *slog.Logger) (*tracker.User, error) {
	corrupt := func(err error) error { return &CorruptStateError{Key: key, Err: err} }

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, corrupt(fmt.Errorf("invalid JSON: %w", err))
	}

	schema, err := profileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, corrupt(fmt.Errorf("schema validation failed: %w", err))
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, corrupt(err)
	}

	tasks := make([]tracker.Task, 0, len(doc.Tasks))
	for i, td := range doc.Tasks {
		date, err := tracker.ParseDate(td.Date)
		if err != nil {
			return nil, corrupt(fmt.Errorf("task %d: %w", i, err))
		}
		tasks = append(tasks, tracker.Task{
			Name:     td.Name,
			Category: td.Category,
			Stat:     tracker.Stat(td.Stat),
			Duration: td.Duration,
			Date:     date,
			Outside:  td.Outside,
		})
	}

	u, err := tracker.Replay(rules, tasks)
	if err != nil {
		return nil, corrupt(err)
	}

	if drift := totalsDrift(doc, u); drift != "" {
		logger.Warn("stored totals disagree with task log, using replayed values",
			"profile", key, "field", drift, "stored_xp", doc.XP, "replayed_xp", u.XP())
	}
	return u, nil
}

func totalsDrift(doc document, u *tracker.User) string {
	if doc.XP != u.XP() {
		return "xp"
	}
	for s, v := range u.Stats() {
		if doc.Stats[string(s)] != v {
			return "stats." + string(s)
		}
	}
	return ""
}
