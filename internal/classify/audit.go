package classify

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/hirelens/incentive-cli/internal/model"
)

// auditHeader is written once per file; the file is append-only so runs
// accumulate into the same threshold-tuning log.
var auditHeader = []string{
	"incentive",
	"top_1_category", "top_1_score",
	"top_2_category", "top_2_score",
	"top_3_category", "top_3_score",
	"top_4_category", "top_4_score",
	"top_5_category", "top_5_score",
	"best_category", "best_score",
	"threshold", "assigned",
}

// AuditLog appends one CSV row per classified phrase with its top category
// candidates. Looking at near-misses here is how the threshold gets tuned.
type AuditLog struct {
	file   *os.File
	writer *csv.Writer
}

// OpenAuditLog opens (or creates) the audit CSV, writing the header only
// when the file is new or empty.
func OpenAuditLog(path string) (*AuditLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: open audit log %s", path)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "classify: stat audit log")
	}

	log := &AuditLog{file: f, writer: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := log.writer.Write(auditHeader); err != nil {
			_ = f.Close()
			return nil, eris.Wrap(err, "classify: write audit header")
		}
	}
	return log, nil
}

// Write appends one row. top holds the best candidates in rank order; short
// rankings pad with empty cells.
func (l *AuditLog) Write(score model.PhraseScore, top []model.CategoryScore, threshold float64) error {
	row := make([]string, 0, len(auditHeader))
	row = append(row, score.Phrase)
	for i := 0; i < 5; i++ {
		if i < len(top) {
			row = append(row, top[i].Category, formatScore(top[i].Score))
		} else {
			row = append(row, "", "")
		}
	}
	assigned := "0"
	if score.Assigned {
		assigned = "1"
	}
	row = append(row,
		score.BestCategory, formatScore(score.BestScore),
		formatScore(threshold), assigned,
	)

	if err := l.writer.Write(row); err != nil {
		return eris.Wrap(err, "classify: write audit row")
	}
	l.writer.Flush()
	return l.writer.Error()
}

// Close flushes and closes the log.
func (l *AuditLog) Close() error {
	l.writer.Flush()
	if err := l.writer.Error(); err != nil {
		_ = l.file.Close()
		return eris.Wrap(err, "classify: flush audit log")
	}
	return l.file.Close()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
