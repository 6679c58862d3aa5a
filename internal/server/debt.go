package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	debtdomain "github.com/haroun39/facteur/internal/debt/domain"
)

// @Summary      List Debts
// @Description  List customers ordered by outstanding balance
// @Tags         debts
// @Produce      json
// @Param        q             query     string  false  "Search query"
// @Param        include_zero  query     bool    false  "Keep settled customers"
// @Success      200  {object}  debtdomain.ListDebtsResponse
// @Router       /debts [get]
func (s *Server) ListDebts(c *gin.Context) {
	var query struct {
		Query       string `form:"q"`
		IncludeZero bool   `form:"include_zero"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.debtSvc.ListDebts(c.Request.Context(), debtdomain.ListDebtsRequest{
		Query:       strings.TrimSpace(query.Query),
		IncludeZero: query.IncludeZero,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
