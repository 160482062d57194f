package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"keeper/core"

	"github.com/fatih/structs"
	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

type notifier struct {
	events core.EventStore
}

// New notifier log events and save them to the event store
func New(events core.EventStore) core.Notifier {
	return &notifier{events: events}
}

func (n *notifier) Notify(ctx context.Context, kind core.EventKind, currency string, payload interface{}) error {
	fields := logFields(payload)
	fields["event"] = kind.String()
	fields["currency"] = currency
	log := logger.FromContext(ctx).WithFields(fields)

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := &core.Event{
		Kind:     kind,
		Currency: currency,
		Data:     data,
	}
	if err := n.events.Create(ctx, event); err != nil {
		log.WithError(err).Errorln("events.Create")
		return err
	}

	log.Infoln("notify")
	return nil
}

func logFields(payload interface{}) logrus.Fields {
	fields := logrus.Fields{}
	if payload == nil || !structs.IsStruct(payload) {
		return fields
	}

	for _, f := range structs.Fields(payload) {
		if !f.IsExported() {
			continue
		}

		name := strings.Split(f.Tag("json"), ",")[0]
		if name == "" || name == "-" {
			name = f.Name()
		}

		v := f.Value()
		if s, ok := v.(fmt.Stringer); ok {
			v = s.String()
		}

		fields[name] = v
	}

	return fields
}
