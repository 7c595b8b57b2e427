package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/ports"
	"github.com/emiliopalmerini/mood/internal/util"
)

type keyed interface {
	Key() string
}

func joinKeys[T keyed](values []T) string {
	keys := make([]string, len(values))
	for i, v := range values {
		keys[i] = v.Key()
	}
	return strings.Join(keys, ",")
}

// listOptions turns the shared --kind/--period/--limit flags into a sink query.
func listOptions(kind, period string, limit int, now time.Time) (ports.ListRecordsOptions, error) {
	opts := ports.ListRecordsOptions{Limit: limit}

	if kind != "" {
		k, err := domain.ParseKind(kind)
		if err != nil {
			return opts, err
		}
		opts.Kind = &k
	}

	switch period {
	case "", "all":
	case "today", "week", "month":
		since := util.StartOfPeriod(period, now)
		opts.Since = &since
	default:
		return opts, fmt.Errorf("unknown period %q (use today, week, month or all)", period)
	}
	return opts, nil
}
