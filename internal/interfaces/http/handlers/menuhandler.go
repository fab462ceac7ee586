package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/domain/menu"
	"github.com/buildingai/cozepkg/internal/shared/logger"
	"github.com/buildingai/cozepkg/internal/shared/utils"
)

type MenuHandler struct {
	menus  menuLister
	logger logger.Interface
}

func NewMenuHandler(menus menuLister, logger logger.Interface) *MenuHandler {
	return &MenuHandler{menus: menus, logger: logger}
}

type MenuNodeResponse struct {
	ID             uint                `json:"id"`
	Code           string              `json:"code,omitempty"`
	Name           string              `json:"name"`
	Path           string              `json:"path"`
	Component      string              `json:"component,omitempty"`
	Icon           string              `json:"icon,omitempty"`
	Sort           int                 `json:"sort"`
	Type           int                 `json:"type"`
	PermissionCode string              `json:"permissionCode,omitempty"`
	PluginPackName string              `json:"pluginPackName,omitempty"`
	IsHidden       bool                `json:"isHidden"`
	Children       []*MenuNodeResponse `json:"children"`
}

// GetTree handles GET /consoleapi/menu/tree
func (h *MenuHandler) GetTree(c *gin.Context) {
	menus, err := h.menus.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list menus", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", toMenuNodes(menu.BuildTree(menus)))
}

func toMenuNodes(nodes []*menu.TreeNode) []*MenuNodeResponse {
	out := make([]*MenuNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		m := n.Menu
		out = append(out, &MenuNodeResponse{
			ID:             m.ID(),
			Code:           deref(m.Code()),
			Name:           m.Name(),
			Path:           m.Path(),
			Component:      m.Component(),
			Icon:           m.Icon(),
			Sort:           m.Sort(),
			Type:           int(m.Type()),
			PermissionCode: deref(m.PermissionCode()),
			PluginPackName: deref(m.PluginPackName()),
			IsHidden:       m.IsHidden(),
			Children:       toMenuNodes(n.Children),
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
