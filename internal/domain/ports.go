package domain

import "context"

// PresetSource provides named ratio presets. Implementations can be
// in-memory (built-in table), file-backed, or both.
type PresetSource interface {
	List(ctx context.Context) ([]PresetSummary, error)
	Get(ctx context.Context, id string) (*Preset, error)
	Search(ctx context.Context, query string) ([]PresetSummary, error)
}

// SnapshotStore persists the last-used raw inputs. Implementations can be
// in-memory or SQLite.
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, id string) (*Snapshot, error)
	Latest(ctx context.Context) (*Snapshot, error)
	List(ctx context.Context, limit int) ([]*Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// CommandParser converts raw user input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
