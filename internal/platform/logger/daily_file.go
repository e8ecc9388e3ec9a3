package logger

import (
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const dayLayout = "2006-01-02"

// dailyFile は日付が変わるたびに新しいapp_YYYY-MM-DD.logへ切り替えるio.WriteCloserです。
// 同じ日の中ではlumberjackがサイズでローテーションします。
type dailyFile struct {
	mu   sync.Mutex
	dir  string
	now  func() time.Time
	day  string
	file *lumberjack.Logger
}

func newDailyFile(dir string, now func() time.Time) *dailyFile {
	return &dailyFile{dir: dir, now: now}
}

// Write writes p to the file for the current date, switching files after midnight.
func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t := d.now()
	if day := t.Format(dayLayout); day != d.day || d.file == nil {
		if d.file != nil {
			_ = d.file.Close()
		}
		d.day = day
		d.file = &lumberjack.Logger{
			Filename:   FileName(d.dir, t),
			MaxSize:    maxFileSizeMB,
			MaxBackups: maxBackups,
		}
	}
	return d.file.Write(p)
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	d.day = ""
	return err
}
