/*
Package errors provides semantic error types for the docstore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrService      = errors.New("service request failed")
	    ErrNotFound     = errors.New("item not found")
	    ErrConflict     = errors.New("item already exists")
	    ErrInvalidInput = errors.New("invalid input")
	)

Usage:

	// Check error type
	var fam family.Family
	_, err := container.ReadItem(ctx, "AndersenFamily", "Andersen", &fam)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return fmt.Errorf("family %s does not exist", "AndersenFamily")
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("Families", "AndersenFamily", "Andersen")
	err := errors.NewConflictError("Families", "AndersenFamily")
	err := errors.NewValidationError("throughputUnits", "must be positive")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
