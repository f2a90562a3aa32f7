package domain

import (
	"sort"
	"time"
)

// TreeNode wraps a task with its resolved children and depth. Nodes are
// rebuilt from the flat collection on every query and never persisted.
type TreeNode struct {
	Task     Task
	Children []*TreeNode
	Depth    int
}

// BuildTree derives the forest of live tasks from a flat collection.
// Soft-deleted tasks are excluded entirely. A task whose ParentID does
// not resolve to a live task becomes a root. Sibling lists at every
// level are ordered by CreatedAt ascending, ties kept in input order.
//
// Depth is assigned top-down from the roots; a visited guard breaks
// parent cycles by promoting the unreached remainder to roots instead
// of looping.
func BuildTree(tasks []Task) []*TreeNode {
	live := liveTasks(tasks)

	// Pass 1: one node per live task, so children that appear before
	// their parent in input order still link correctly.
	nodes := make(map[string]*TreeNode, len(live))
	inputOrder := make(map[string]int, len(live))
	for i, t := range live {
		nodes[t.ID] = &TreeNode{Task: t}
		inputOrder[t.ID] = i
	}

	// Pass 2: link to parents, or collect as roots.
	var roots []*TreeNode
	for _, t := range live {
		n := nodes[t.ID]
		if t.ParentID != nil {
			if parent, ok := nodes[*t.ParentID]; ok && parent != n {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	sortSiblings(roots, inputOrder)
	for _, n := range nodes {
		sortSiblings(n.Children, inputOrder)
	}

	visited := make(map[string]bool, len(nodes))
	for _, r := range roots {
		assignDepth(r, 0, visited)
	}

	// Any node never reached from a root sits on a parent cycle.
	// Promote one per cycle to a root; assignDepth drops the back edge.
	for _, t := range live {
		if visited[t.ID] {
			continue
		}
		n := nodes[t.ID]
		assignDepth(n, 0, visited)
		roots = append(roots, n)
	}

	return roots
}

// assignDepth walks top-down, stamping depth and pruning child links to
// already-visited nodes so each task appears exactly once in the forest.
func assignDepth(n *TreeNode, depth int, visited map[string]bool) {
	visited[n.Task.ID] = true
	n.Depth = depth
	kept := make([]*TreeNode, 0, len(n.Children))
	for _, c := range n.Children {
		if visited[c.Task.ID] {
			continue
		}
		kept = append(kept, c)
		assignDepth(c, depth+1, visited)
	}
	n.Children = kept
}

func sortSiblings(siblings []*TreeNode, inputOrder map[string]int) {
	sort.SliceStable(siblings, func(i, j int) bool {
		a, b := siblings[i].Task, siblings[j].Task
		if a.CreatedAt.Equal(b.CreatedAt) {
			return inputOrder[a.ID] < inputOrder[b.ID]
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// Flatten walks the forest depth-first in pre-order, preserving the
// sibling order established by BuildTree.
func Flatten(nodes []*TreeNode) []*TreeNode {
	var out []*TreeNode
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

// DescendantIDs collects the ids of every live task whose parent chain
// leads back to taskID, excluding taskID itself.
func DescendantIDs(taskID string, tasks []Task) []string {
	children := make(map[string][]string)
	for _, t := range liveTasks(tasks) {
		if t.ParentID != nil {
			children[*t.ParentID] = append(children[*t.ParentID], t.ID)
		}
	}

	var out []string
	visited := map[string]bool{taskID: true}
	var walk func(id string)
	walk = func(id string) {
		for _, child := range children[id] {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			walk(child)
		}
	}
	walk(taskID)
	return out
}

// AncestorIDs walks parent links upward from the given live task,
// returning ids from the immediate parent to the topmost ancestor. The
// walk stops at a null parent or at a missing or deleted ancestor, and
// a visited guard stops parent cycles.
func AncestorIDs(taskID string, tasks []Task) []string {
	index := liveIndex(tasks)
	t, ok := index[taskID]
	if !ok {
		return nil
	}

	var out []string
	visited := map[string]bool{taskID: true}
	for t.ParentID != nil {
		parent, ok := index[*t.ParentID]
		if !ok || visited[parent.ID] {
			break
		}
		visited[parent.ID] = true
		out = append(out, parent.ID)
		t = parent
	}
	return out
}

// AncestorTitles returns the titles along the ancestor walk, immediate
// parent first, for breadcrumb display.
func AncestorTitles(taskID string, tasks []Task) []string {
	index := liveIndex(tasks)
	ids := AncestorIDs(taskID, tasks)
	titles := make([]string, 0, len(ids))
	for _, id := range ids {
		titles = append(titles, index[id].Title)
	}
	return titles
}

// EffectiveDueDate returns the task's own due date, or the nearest
// ancestor's due date when the task has none, or nil. Subtasks inherit
// a deadline from the project above them without duplicating it.
func EffectiveDueDate(t Task, tasks []Task) *time.Time {
	if t.DueAt != nil {
		return t.DueAt
	}
	index := liveIndex(tasks)
	for _, id := range AncestorIDs(t.ID, tasks) {
		if anc := index[id]; anc.DueAt != nil {
			return anc.DueAt
		}
	}
	return nil
}

func liveTasks(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Deleted() {
			out = append(out, t)
		}
	}
	return out
}

func liveIndex(tasks []Task) map[string]Task {
	index := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		if !t.Deleted() {
			index[t.ID] = t
		}
	}
	return index
}
