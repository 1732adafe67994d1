package conflicts

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/types"
)

type interval struct {
	id    int64
	start int
	end   int
	time  types.TimeString
}

type bucket struct {
	designer string
	date     time.Time
	items    []interval
}

type group struct {
	designer string
	start    int
	record   domain.ConflictRecord
}

// BuildIndex groups overlapping active reservations per designer and date.
//
// Reservations of one designer on one date are sorted by start and swept with a set of
// active intervals. Every maximal set of two or more mutually overlapping reservations is
// reported once, so a chain A-B-C where A and C do not touch yields [A B] and [B C]. A group
// in which all reservations start at the same minute is a double_booking, any other group is
// a time_overlap. The result is keyed by "YYYY-MM-DD" and ordered by designer, then start.
func BuildIndex(reservations []domain.Reservation) map[string][]domain.ConflictRecord {
	buckets := make(map[string]*bucket)
	for i := range reservations {
		r := &reservations[i]
		if !r.IsActive() {
			continue
		}
		start, end, err := r.Interval()
		if err != nil || end <= start {
			continue
		}
		key := r.DesignerName + "\x00" + types.FormatDate(r.Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{designer: r.DesignerName, date: types.DateOnly(r.Date)}
			buckets[key] = b
		}
		b.items = append(b.items, interval{id: r.ID, start: start, end: end, time: r.Time})
	}

	byDate := make(map[string][]group)
	for _, b := range buckets {
		for _, g := range sweep(b) {
			day := types.FormatDate(b.date)
			byDate[day] = append(byDate[day], g)
		}
	}

	index := make(map[string][]domain.ConflictRecord, len(byDate))
	for day, groups := range byDate {
		sort.SliceStable(groups, func(i, j int) bool {
			if groups[i].designer != groups[j].designer {
				return groups[i].designer < groups[j].designer
			}
			return groups[i].start < groups[j].start
		})
		records := make([]domain.ConflictRecord, len(groups))
		for i, g := range groups {
			records[i] = g.record
		}
		index[day] = records
	}
	return index
}

// Flatten returns the records of index ordered by date.
func Flatten(index map[string][]domain.ConflictRecord) []domain.ConflictRecord {
	days := make([]string, 0, len(index))
	for day := range index {
		days = append(days, day)
	}
	sort.Strings(days)

	result := make([]domain.ConflictRecord, 0)
	for _, day := range days {
		result = append(result, index[day]...)
	}
	return result
}

func sweep(b *bucket) []group {
	items := b.items
	sort.Slice(items, func(i, j int) bool {
		if items[i].start != items[j].start {
			return items[i].start < items[j].start
		}
		if items[i].end != items[j].end {
			return items[i].end < items[j].end
		}
		return items[i].id < items[j].id
	})

	var (
		groups []group
		active []interval
		added  bool
	)

	for _, it := range items {
		if len(active) > 0 && it.start >= minEnd(active) {
			if added && len(active) >= 2 {
				groups = append(groups, newGroup(b, active))
			}
			added = false
			active = expire(active, it.start)
		}
		active = append(active, it)
		added = true
	}
	if added && len(active) >= 2 {
		groups = append(groups, newGroup(b, active))
	}

	return groups
}

// minEnd returns the earliest end among active intervals.
func minEnd(active []interval) int {
	m := active[0].end
	for _, it := range active[1:] {
		if it.end < m {
			m = it.end
		}
	}
	return m
}

// expire drops intervals that end at or before t, keeping start order.
func expire(active []interval, t int) []interval {
	kept := active[:0:0]
	for _, it := range active {
		if it.end > t {
			kept = append(kept, it)
		}
	}
	return kept
}

func newGroup(b *bucket, run []interval) group {
	ids := make([]int64, len(run))
	sameStart := true
	labels := make([]string, len(run))
	for i, it := range run {
		ids[i] = it.id
		labels[i] = fmt.Sprintf("#%d %s", it.id, it.time)
		if it.start != run[0].start {
			sameStart = false
		}
	}

	record := domain.ConflictRecord{
		Date:           b.date,
		ReservationIDs: ids,
		DesignerName:   b.designer,
	}
	if sameStart {
		record.Type = domain.ConflictDoubleBooking
		record.Severity = domain.SeverityError
		record.Message = fmt.Sprintf("%s is double booked at %s: %s", b.designer, run[0].time, strings.Join(labels, ", "))
	} else {
		record.Type = domain.ConflictTimeOverlap
		record.Severity = domain.SeverityWarning
		record.Message = fmt.Sprintf("%s has %d overlapping reservations: %s", b.designer, len(run), strings.Join(labels, ", "))
	}

	return group{designer: b.designer, start: run[0].start, record: record}
}
