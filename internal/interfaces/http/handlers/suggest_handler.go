package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whisperbox.backend/internal/domain/entities"
	"whisperbox.backend/internal/interfaces/http/response"
	"whisperbox.backend/internal/usecases"
)

// SuggestHandler serves AI-generated message suggestions.
type SuggestHandler struct {
	suggestUsecase *usecases.SuggestUsecase
}

func NewSuggestHandler(suggestUsecase *usecases.SuggestUsecase) *SuggestHandler {
	return &SuggestHandler{suggestUsecase: suggestUsecase}
}

// SuggestMessages returns suggested messages for the requested category.
// It never fails: when the model is unreachable the list is simply empty.
func (h *SuggestHandler) SuggestMessages(c *gin.Context) {
	var input entities.SuggestInput
	// Body is optional: an empty or absent body means the default category.
	_ = c.ShouldBindJSON(&input)

	suggestions := h.suggestUsecase.Suggest(c.Request.Context(), input.Type)
	response.Success(c, http.StatusOK, "Suggestions generated", gin.H{"suggestions": suggestions})
}
