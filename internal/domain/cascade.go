package domain

import "time"

// ToggleCascade flips completion of the given task and, when the flip
// lands on completed, auto-completes every ancestor whose live
// descendants are now all done. Ancestors are checked nearest first so
// that completing a parent can in turn satisfy the grandparent. An
// ancestor with zero descendants never auto-completes.
//
// Returns a new collection; the input is never mutated.
func ToggleCascade(tasks []Task, id string, now time.Time) []Task {
	out := cloneTasks(tasks)
	i := indexOf(out, id)
	if i < 0 {
		return out
	}
	out[i] = out[i].ToggleComplete(now)
	if !out[i].Completed {
		return out
	}
	return completeAncestors(out, id, now)
}

func completeAncestors(tasks []Task, id string, now time.Time) []Task {
	for _, ancID := range AncestorIDs(id, tasks) {
		descendants := DescendantIDs(ancID, tasks)
		if len(descendants) == 0 || !allCompleted(tasks, descendants) {
			continue
		}
		if i := indexOf(tasks, ancID); i >= 0 && !tasks[i].Completed {
			tasks[i] = tasks[i].SetCompleted(true, now)
		}
	}
	return tasks
}

// DeleteCascade soft-deletes the given task together with its entire
// live descendant subtree, as one atomic replacement of the collection.
func DeleteCascade(tasks []Task, id string, now time.Time) []Task {
	doomed := map[string]bool{id: true}
	for _, d := range DescendantIDs(id, tasks) {
		doomed[d] = true
	}

	out := cloneTasks(tasks)
	for i, t := range out {
		if doomed[t.ID] && !t.Deleted() {
			out[i] = t.SoftDelete(now)
		}
	}
	return out
}

func allCompleted(tasks []Task, ids []string) bool {
	index := liveIndex(tasks)
	for _, id := range ids {
		if t, ok := index[id]; !ok || !t.Completed {
			return false
		}
	}
	return true
}

func indexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
