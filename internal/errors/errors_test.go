package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "item not found",
			expected: "NOT_FOUND: item not found",
		},
		{
			name:     "invalid formula error",
			code:     errors.CodeInvalidFormula,
			message:  "unexpected character",
			expected: "INVALID_FORMULA: unexpected character",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("vm exploded")
	wrapped := errors.Wrap(baseErr, "failed to evaluate roll")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to evaluate roll", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.Formula("d20+@x", "unresolved variable @x")
	wrapped := errors.Wrap(baseErr, "failed to roll attack")

	s.Assert().Equal(errors.CodeInvalidFormula, wrapped.Code)
	s.Assert().Equal("failed to roll attack", wrapped.Message)
	s.Assert().Equal("d20+@x", errors.GetMeta(wrapped)[errors.MetaFormula])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
	s.Assert().Nil(errors.WrapFormula(nil, "d20", "should be nil"))
}

func (s *ErrorsTestSuite) TestWrapFormula() {
	cause := fmt.Errorf("Parse Error: expected operand")
	err := errors.WrapFormula(cause, "2d6 +", "invalid formula")

	s.Assert().True(errors.IsFormula(err))
	s.Assert().Equal("2d6 +", err.Meta[errors.MetaFormula])
	s.Assert().ErrorIs(err, cause)
}

func (s *ErrorsTestSuite) TestFormulaf() {
	err := errors.Formulaf("1d0", "die size must be positive, got %d", 0)

	s.Assert().Equal(errors.CodeInvalidFormula, err.Code)
	s.Assert().Equal("die size must be positive, got 0", err.Message)
	s.Assert().Equal("1d0", err.Meta[errors.MetaFormula])
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("test")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	formulaErr := errors.Formula("d", "test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(formulaErr))

	s.Assert().True(errors.IsFormula(formulaErr))
	s.Assert().False(errors.IsFormula(notFoundErr))
	s.Assert().True(errors.IsInternal(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestRecoverable() {
	s.Assert().True(errors.CodeInvalidFormula.Recoverable())
	s.Assert().True(errors.CodeNotFound.Recoverable())
	s.Assert().False(errors.CodeInternal.Recoverable())
	s.Assert().False(errors.CodeDeadlineExceeded.Recoverable())
}
