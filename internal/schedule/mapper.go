package schedule

import (
	"errors"
	"time"

	"github.com/lfreitas/divan/internal/api"
	"github.com/lfreitas/divan/internal/timeutil"
)

// Mapper errors.
var (
	ErrAllDatesPast   = errors.New("all selected dates are in the past")
	ErrNoValidRecords = errors.New("no valid schedule records to submit")
)

// Form is the availability form state: the dates the professional selected
// plus the shared window metadata applied to each of them.
type Form struct {
	Dates                  []time.Time
	Start                  string // "HH:MM"; ignored in free mode
	End                    string // "HH:MM"; ignored in free mode
	Controlled             bool
	CustomTimes            []string
	IntervalMinutes        int
	CancellationPolicyDays int
	AveragePrice           *float64
	Observation            string
}

// Validate returns the list of user-facing problems with the form. An empty
// list means the form can be submitted. Validation runs entirely client-side,
// before any network call.
func (f Form) Validate() []string {
	var problems []string

	if len(f.Dates) == 0 {
		problems = append(problems, "selecione ao menos uma data")
	}
	if f.CancellationPolicyDays < 0 {
		problems = append(problems, "política de cancelamento não pode ser negativa")
	}

	if f.Controlled {
		if err := timeutil.ValidateTime(f.Start); err != nil {
			problems = append(problems, "horário inicial inválido")
		}
		if err := timeutil.ValidateTime(f.End); err != nil {
			problems = append(problems, "horário final inválido")
		}
		if f.Start != "" && f.End != "" && f.End <= f.Start {
			problems = append(problems, "horário final deve ser depois do inicial")
		}
		if f.IntervalMinutes <= 0 {
			problems = append(problems, "intervalo deve ser maior que zero")
		}
	} else {
		if len(f.CustomTimes) == 0 {
			problems = append(problems, "adicione ao menos um horário")
		}
		for _, t := range f.CustomTimes {
			if err := timeutil.ValidateTime(t); err != nil {
				problems = append(problems, "horário inválido: "+t)
				break
			}
		}
	}

	return problems
}

// BuildResult is the outcome of mapping a form to wire records.
type BuildResult struct {
	Records []api.ScheduleRecord
	// Skipped lists selected dates dropped because their local instant was not
	// strictly after the submission time. A non-empty Skipped with non-empty
	// Records is a partial success the caller should surface as a warning.
	Skipped []time.Time
}

// BuildCreateRecords maps a validated form to one creation record per selected
// date. Timestamps are encoded as naive local strings: the wall-clock values
// the professional picked, never shifted to UTC.
//
// Dates already in the past at submission time are excluded and reported in
// Skipped. If every date is past, ErrAllDatesPast is returned and nothing is
// submitted.
func BuildCreateRecords(f Form, now time.Time) (*BuildResult, error) {
	start, end := f.Start, f.End
	customs := f.CustomTimes
	if !f.Controlled {
		customs = NormalizeCustomTimes(customs)
		if len(customs) == 0 {
			return nil, ErrNoValidRecords
		}
		// In free mode the first custom time stands in for both window bounds.
		start, end = customs[0], customs[0]
	}

	result := &BuildResult{}
	for _, date := range f.Dates {
		initial := timeutil.NewNaiveLocal(date, start)
		if !initial.After(now) {
			result.Skipped = append(result.Skipped, date)
			continue
		}

		record := api.ScheduleRecord{
			InitialTime:        initial,
			EndTime:            timeutil.NewNaiveLocal(date, end),
			Interval:           f.IntervalMinutes,
			CancellationPolicy: f.CancellationPolicyDays,
			AverageValue:       f.AveragePrice,
			Observation:        f.Observation,
			IsControlled:       f.Controlled,
		}
		if !f.Controlled {
			record.CustomTimes = customs
		}
		result.Records = append(result.Records, record)
	}

	if len(result.Records) == 0 {
		if len(result.Skipped) > 0 {
			return nil, ErrAllDatesPast
		}
		return nil, ErrNoValidRecords
	}
	return result, nil
}

// FromRecord recovers the schedule from a remote record by reading the literal
// timestamp fields, the symmetric inverse of BuildCreateRecords.
func FromRecord(r api.ScheduleRecord) *Schedule {
	return &Schedule{
		ID:                     r.ID,
		Date:                   r.InitialTime.Date(),
		Start:                  r.InitialTime.Clock(),
		End:                    r.EndTime.Clock(),
		IntervalMinutes:        r.Interval,
		Controlled:             r.IsControlled,
		CustomTimes:            r.CustomTimes,
		CancellationPolicyDays: r.CancellationPolicy,
		AveragePrice:           r.AverageValue,
		Observation:            r.Observation,
	}
}
