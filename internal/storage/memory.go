package storage

// Memory keeps tasks in a slice. It is not safe for concurrent use; a
// session is its only caller.
type Memory struct {
	tasks []Task
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(text string) error {
	m.tasks = append(m.tasks, Task{Text: text})
	return nil
}

func (m *Memory) MarkDone(pos int) error {
	if !m.valid(pos) {
		return &PositionError{Position: pos, Err: ErrNotFound}
	}
	m.tasks[pos-1].Done = true
	return nil
}

func (m *Memory) Remove(pos int) error {
	if !m.valid(pos) {
		return &PositionError{Position: pos, Err: ErrOutOfRange}
	}
	m.tasks = append(m.tasks[:pos-1], m.tasks[pos:]...)
	return nil
}

func (m *Memory) All() ([]Entry, error) {
	entries := make([]Entry, len(m.tasks))
	for i, t := range m.tasks {
		entries[i] = Entry{Position: i + 1, Task: t}
	}
	return entries, nil
}

func (m *Memory) Done() ([]Entry, error) {
	all, _ := m.All()
	return filterDone(all, true), nil
}

func (m *Memory) Pending() ([]Entry, error) {
	all, _ := m.All()
	return filterDone(all, false), nil
}

func (m *Memory) Close() error {
	m.tasks = nil
	return nil
}

func (m *Memory) valid(pos int) bool {
	return pos >= 1 && pos <= len(m.tasks)
}
