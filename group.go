package main

import "sort"

// EventGroup holds the events that start on the same tick.
type EventGroup struct {
	StartTick int
	Events    []NoteEvent
}

// MaxDuration is the longest event in the group, 0 for an empty group.
func (g EventGroup) MaxDuration() float64 {
	longest := 0.0
	for _, ev := range g.Events {
		if ev.Duration > longest {
			longest = ev.Duration
		}
	}
	return longest
}

// GroupEvents collates events by start tick into groups sorted ascending.
// Within a group, events keep their extraction order.
func GroupEvents(events []NoteEvent) []EventGroup {
	byTick := make(map[int][]NoteEvent)
	for _, ev := range events {
		byTick[ev.StartTick] = append(byTick[ev.StartTick], ev)
	}
	groups := make([]EventGroup, 0, len(byTick))
	for tick, evs := range byTick {
		groups = append(groups, EventGroup{StartTick: tick, Events: evs})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].StartTick < groups[j].StartTick })
	return groups
}
