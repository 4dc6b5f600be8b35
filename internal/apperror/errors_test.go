package apperror

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromStore(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), KindNotFound},
		{"foreign key", gorm.ErrForeignKeyViolated, KindNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, KindConflict},
		{"deadline", context.DeadlineExceeded, KindTransient},
		{"canceled", context.Canceled, KindTransient},
		{"bad conn", driver.ErrBadConn, KindTransient},
		{"other", errors.New("syntax error"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStore(tt.err, "file %d", 7)
			assert.Equal(t, tt.want, KindOf(err))
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, err.Error(), "file 7")
		})
	}
}

func TestFromStore_PassesThroughAppErrors(t *testing.T) {
	orig := Conflict("file %d is already shared with user %d", 1, 2)
	err := FromStore(orig, "ignored")
	assert.Same(t, orig, err)
	assert.Nil(t, FromStore(nil, "nothing"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("ctx: %w", NotFound("user %d not found", 3))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.True(t, Is(Conflict("dup"), KindConflict))
	assert.False(t, Is(nil, KindConflict))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(KindTransient))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "user 5 not found", NotFound("user %d not found", 5).Error())
	err := Internal(errors.New("boom"), "failed to load file %d", 9)
	assert.Equal(t, "failed to load file 9: boom", err.Error())
}
