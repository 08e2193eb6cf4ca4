package runtime

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"hubbub/domain"
	"hubbub/domain/event"
	"hubbub/errors"
	"hubbub/observability"
)

// Dispatcher maps inbound typed commands onto the Registry/Conversation
// pipeline and emits the resulting domain events. It is the only
// component the transport layer talks to for mutations.
//
// Propagation policy: ErrNotFound and ErrConflict on administrative
// operations surface to the caller; ErrDenied on a mutating command is
// swallowed into a no-op with no broadcast and no acknowledgment. This
// silent-drop rule is applied uniformly across all command kinds.
type Dispatcher struct {
	log        *slog.Logger
	registry   *Registry
	events     chan<- event.DomainEvent
	monitoring *observability.Monitoring
	now        func() time.Time
}

func NewDispatcher(log *slog.Logger, registry *Registry,
	events chan<- event.DomainEvent, monitoring *observability.Monitoring) *Dispatcher {
	return &Dispatcher{
		log:        log,
		registry:   registry,
		events:     events,
		monitoring: monitoring,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (d *Dispatcher) Dispatch(cmd domain.Command) error {
	d.monitoring.IncrCommands()

	switch c := cmd.(type) {
	case domain.NewParticipantCommand:
		_, err := d.registry.RegisterParticipant(c.Participant, c.Nick)
		return err

	case domain.NewConversationCommand:
		_, err := d.registry.CreateConversation(c.Conversation, c.Owner, c.Name)
		return err

	case domain.JoinCommand:
		if err := d.registry.Join(c.Conversation, c.Participant); err != nil {
			return err
		}
		nick := d.nickOf(c.Participant)
		d.emit(event.ParticipantJoined{
			Conversation: c.Conversation,
			Participant:  c.Participant,
			Nick:         nick,
			At:           d.now(),
		})
		return nil

	case domain.ReplaceCommand:
		convo, err := d.registry.Conversation(c.Conversation)
		if err != nil {
			return err
		}
		snapshot, err := convo.Replace(c.Sender, c.Selection, c.Text)
		if err != nil {
			return d.swallowDenied(err, "replace", c.Sender)
		}
		d.emit(event.BufferReplaced{
			Conversation: c.Conversation,
			Sender:       c.Sender,
			Snapshot:     snapshot,
			At:           d.now(),
		})
		return nil

	case domain.CommitCommand:
		convo, err := d.registry.Conversation(c.Conversation)
		if err != nil {
			return err
		}
		at := c.At
		if at.IsZero() {
			at = d.now()
		}
		msg, err := convo.Commit(c.Sender, d.nickOf(c.Sender), at)
		if err != nil {
			return d.swallowDenied(err, "commit", c.Sender)
		}
		d.monitoring.IncrCommitted()
		d.emit(event.MessageCommitted{
			ID:           msg.ID,
			Conversation: c.Conversation,
			Sender:       c.Sender,
			Nick:         msg.Nick,
			Content:      msg.Content,
			At:           msg.CommittedAt,
		})
		return nil

	case domain.MoveCursorCommand:
		convo, err := d.registry.Conversation(c.Conversation)
		if err != nil {
			return err
		}
		if !convo.LevelOf(c.Sender).MayMutate() {
			return d.swallowDenied(errors.ErrDenied, "move_cursor", c.Sender)
		}
		d.emit(event.CursorMoved{
			Conversation: c.Conversation,
			Sender:       c.Sender,
			Position:     c.Position,
			At:           d.now(),
		})
		return nil

	case domain.BanCommand:
		convo, err := d.registry.Conversation(c.Conversation)
		if err != nil {
			return err
		}
		if convo.LevelOf(c.Sender) < domain.Admin {
			return d.swallowDenied(errors.ErrDenied, "ban", c.Sender)
		}
		if err := convo.Ban(c.Target); err != nil {
			return d.swallowDenied(err, "ban", c.Sender)
		}
		return nil

	case domain.PromoteCommand:
		convo, err := d.registry.Conversation(c.Conversation)
		if err != nil {
			return err
		}
		if convo.LevelOf(c.Sender) < domain.Admin {
			return d.swallowDenied(errors.ErrDenied, "promote", c.Sender)
		}
		convo.AddAdmin(c.Target)
		return nil

	case domain.TransferOwnerCommand:
		convo, err := d.registry.Conversation(c.Conversation)
		if err != nil {
			return err
		}
		if convo.LevelOf(c.Sender) != domain.Owner {
			return d.swallowDenied(errors.ErrDenied, "transfer_owner", c.Sender)
		}
		convo.SetOwner(c.Target)
		return nil

	case domain.TogglePrivateCommand:
		convo, err := d.registry.Conversation(c.Conversation)
		if err != nil {
			return err
		}
		if convo.LevelOf(c.Sender) < domain.Admin {
			return d.swallowDenied(errors.ErrDenied, "toggle_private", c.Sender)
		}
		convo.TogglePrivate()
		return nil

	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}

// Snapshot is the read-only query path: the committed buffer goes back
// to the requester only, never through the fanout.
func (d *Dispatcher) Snapshot(cmd domain.SnapshotCommand) (event.SnapshotTaken, error) {
	d.monitoring.IncrCommands()

	convo, err := d.registry.Conversation(cmd.Conversation)
	if err != nil {
		return event.SnapshotTaken{}, err
	}
	buffer, err := convo.Snapshot(cmd.Requester)
	if err != nil {
		return event.SnapshotTaken{}, err
	}
	return event.SnapshotTaken{
		Conversation: cmd.Conversation,
		Requester:    cmd.Requester,
		Buffer:       buffer,
		At:           d.now(),
	}, nil
}

// swallowDenied turns a permission failure into a silent no-op and lets
// every other error surface.
func (d *Dispatcher) swallowDenied(err error, op string, sender domain.ParticipantID) error {
	if stderrors.Is(err, errors.ErrDenied) {
		d.log.Debug("command dropped", "op", op, "sender", sender)
		return nil
	}
	return err
}

func (d *Dispatcher) nickOf(id domain.ParticipantID) string {
	p, err := d.registry.Participant(id)
	if err != nil {
		return ""
	}
	return p.Nick
}

// emit never blocks the command path; a full pipeline drops the event.
func (d *Dispatcher) emit(e event.DomainEvent) {
	select {
	case d.events <- e:
	default:
		d.monitoring.IncrDropped()
		d.log.Warn(fmt.Sprintf("Event channel full for conversation %d, dropping event", e.ConversationID()))
	}
}
