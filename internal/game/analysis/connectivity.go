// Package analysis answers ownership-graph questions: connected groups
// of a player's territories, choke points, and attack paths. Group and
// choke-point results are cached per player and must be invalidated
// through Invalidate whenever territory ownership changes; the battle
// resolver is the single call site responsible for that.
package analysis

import (
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
)

// Analyzer computes connectivity over a map's adjacency relation.
type Analyzer struct {
	m *core.Map

	groups      map[int][][]int
	chokePoints map[int][]int
}

// NewAnalyzer creates an analyzer bound to a generated map.
func NewAnalyzer(m *core.Map) *Analyzer {
	return &Analyzer{
		m:           m,
		groups:      make(map[int][][]int),
		chokePoints: make(map[int][]int),
	}
}

// Invalidate drops cached results for a player. Call it for both the
// previous and the new owner after any ownership change.
func (a *Analyzer) Invalidate(playerID int) {
	delete(a.groups, playerID)
	delete(a.chokePoints, playerID)
}

// InvalidateAll drops every cached result, used when ownership is
// rewritten wholesale (game start, replay).
func (a *Analyzer) InvalidateAll() {
	a.groups = make(map[int][][]int)
	a.chokePoints = make(map[int][]int)
}

// ConnectedGroups partitions the player's territories into maximal
// same-owner connected groups. The returned slices share the cache;
// callers must not modify them.
func (a *Analyzer) ConnectedGroups(playerID int) [][]int {
	if cached, ok := a.groups[playerID]; ok {
		return cached
	}
	groups := a.computeGroups(playerID, -1)
	a.groups[playerID] = groups
	return groups
}

// computeGroups runs BFS over same-owner adjacency. A non-negative
// excluded id is treated as un-owned, which is how choke points are
// probed without touching real state.
func (a *Analyzer) computeGroups(playerID, excluded int) [][]int {
	owned := func(id int) bool {
		t := a.m.Territory(id)
		return t != nil && t.Owner == playerID && id != excluded
	}

	visited := make(map[int]bool)
	var groups [][]int
	for _, id := range a.m.ActiveIDs() {
		if !owned(id) || visited[id] {
			continue
		}
		var group []int
		queue := []int{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			group = append(group, cur)
			for n := range a.m.Adjacency[cur] {
				if owned(n) && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// LargestGroupSize returns the size of the player's biggest connected
// group; 0 for an eliminated player.
func (a *Analyzer) LargestGroupSize(playerID int) int {
	largest := 0
	for _, g := range a.ConnectedGroups(playerID) {
		if len(g) > largest {
			largest = len(g)
		}
	}
	return largest
}

// ChokePoints returns the player's territories whose loss would split
// their holdings into more groups than they have now.
func (a *Analyzer) ChokePoints(playerID int) []int {
	if cached, ok := a.chokePoints[playerID]; ok {
		return cached
	}

	baseline := len(a.ConnectedGroups(playerID))
	var chokes []int
	for _, id := range a.m.ActiveIDs() {
		t := a.m.Territory(id)
		if t.Owner != playerID {
			continue
		}
		if len(a.computeGroups(playerID, id)) > baseline {
			chokes = append(chokes, id)
		}
	}
	a.chokePoints[playerID] = chokes
	return chokes
}

// AttackPath finds the shortest territory path from a player-owned
// source to the target, stepping only through territories the player
// does not own (the territories that would have to be conquered). The
// path excludes the source and includes the target; nil when the
// target is unreachable or the source is not the player's.
func (a *Analyzer) AttackPath(playerID, from, to int) []int {
	src := a.m.Territory(from)
	dst := a.m.Territory(to)
	if src == nil || dst == nil || src.Owner != playerID || dst.Owner == playerID {
		return nil
	}

	prev := map[int]int{from: from}
	queue := []int{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for n := range a.m.Adjacency[cur] {
			t := a.m.Territory(n)
			if t == nil || t.Owner == playerID {
				continue
			}
			if _, seen := prev[n]; seen {
				continue
			}
			prev[n] = cur
			if n == to {
				return buildPath(prev, from, to)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func buildPath(prev map[int]int, from, to int) []int {
	var rev []int
	for cur := to; cur != from; cur = prev[cur] {
		rev = append(rev, cur)
	}
	path := make([]int, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}
