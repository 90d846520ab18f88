package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/notaryweb/internal/service"
)

// SubmitContact 接收公共联系表单并转发到事务所邮箱
func (a *API) SubmitContact(c *gin.Context) {
	var payload service.ContactInput
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	if err := a.contact.Submit(c.Request.Context(), payload); err != nil {
		respondResourceError(c, a.log, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"success": true})
}
