package repository

import (
	"database/sql"
	"errors"
)

// HandleNotFound folds sql.ErrNoRows into a (nil, nil) result. Every Find*
// method in this package uses it so that callers distinguish "absent" from
// "failed" without matching on driver errors:
//
//	var cohort model.Cohort
//	err := r.db.GetContext(ctx, &cohort, query, args...)
//	return HandleNotFound(&cohort, err)
func HandleNotFound[T any](result *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
