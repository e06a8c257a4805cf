package coursecheck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// ErrTaskListMissing is the only condition that halts a run before any
// scrape pass starts.
var ErrTaskListMissing = errors.New("task list not found")

// Task is one scrape assignment from the task list: a category section
// header paired with a URL belonging to it.
type Task struct {
	Category string
	URL      string
}

var sectionHeader = regexp.MustCompile(`^\[(.+)\]$`)

func LoadTaskList(path string) ([]Task, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrTaskListMissing, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTaskList(f), nil
}

// ParseTaskList reads the line-oriented task list: `[CATEGORY]` lines
// open a section, subsequent URL lines belong to it. URLs appearing
// before any header are reported and dropped.
func ParseTaskList(r io.Reader) []Task {
	var tasks []Task
	category := ""

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if m := sectionHeader.FindStringSubmatch(line); m != nil {
			category = strings.ToUpper(strings.TrimSpace(m[1]))
			continue
		}
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			if category == "" {
				slog.Warn("url found without a category header", "url", line)
				continue
			}
			tasks = append(tasks, Task{Category: category, URL: line})
		}
	}
	return tasks
}
