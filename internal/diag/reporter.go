package diag

import "ember/internal/source"

// Reporter — минимальный контракт получения диагностик.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// ReportErr forwards a compilation error to r, notes included. Errors that
// are not *Error are reported as UnknownCode with an empty span.
func ReportErr(r Reporter, err error) {
	if r == nil || err == nil {
		return
	}
	if de, ok := AsError(err); ok {
		r.Report(de.Diagnostic)
		return
	}
	r.Report(NewError(UnknownCode, source.Span{}, err.Error()))
}
