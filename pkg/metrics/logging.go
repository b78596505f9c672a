package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"
)

// LogFormatter is a logrus.Formatter that forwards every entry to New Relic,
// fields included, and decorates the inner formatter's output with linking
// metadata.
//
// Based off of: https://github.com/newrelic/go-agent/blob/f1942e10f0819e2c854d5d7289eb0dc1c52a00af/v3/integrations/logcontext-v2/nrlogrus/formatter.go
type LogFormatter struct {
	app   *newrelic.Application
	inner logrus.Formatter
}

func NewLogFormatter(app *newrelic.Application, inner logrus.Formatter) *LogFormatter {
	return &LogFormatter{
		app:   app,
		inner: inner,
	}
}

func (f *LogFormatter) Format(e *logrus.Entry) ([]byte, error) {
	formatted, err := f.inner.Format(e)
	if err != nil {
		return nil, err
	}
	b := bytes.NewBuffer(bytes.TrimRight(formatted, "\n"))

	data := newrelic.LogData{
		Severity: e.Level.String(),
		Message:  forwardedMessage(e),
	}

	var txn *newrelic.Transaction
	if e.Context != nil {
		txn = newrelic.FromContext(e.Context)
	}

	if txn != nil {
		txn.RecordLog(data)
		err = newrelic.EnrichLog(b, newrelic.FromTxn(txn))
	} else {
		f.app.RecordLog(data)
		err = newrelic.EnrichLog(b, newrelic.FromApp(f.app))
	}
	if err != nil {
		return nil, err
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// forwardedMessage flattens the entry's fields into its message, since New
// Relic log records carry no attributes of their own.
func forwardedMessage(e *logrus.Entry) string {
	if len(e.Data) == 0 {
		return e.Message
	}

	errString := "<nil>"
	extra := make(map[string]interface{}, len(e.Data))
	for k, v := range e.Data {
		if k != logrus.ErrorKey {
			extra[k] = v
			continue
		}
		if err, ok := v.(error); ok {
			errString = strconv.Quote(err.Error())
		}
	}

	encoded, err := json.Marshal(extra)
	if err != nil {
		return e.Message
	}
	return fmt.Sprintf("message=%q, error=%s, data=%s", e.Message, errString, encoded)
}
