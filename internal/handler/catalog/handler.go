package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/serene/backend/internal/model/catalog"
	"github.com/zhouzirui/serene/backend/pkg/utils"
)

// Handler 冥想库与专业人士目录的HTTP处理器
type Handler struct {
	store catalog.Store
}

// New 创建目录处理器
func New(store catalog.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册目录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/meditations", h.handleMeditations)
	r.Get("/meditations/categories", h.handleCategories)
	r.Get("/professionals", h.handleProfessionals)
}

// handleMeditations 列出冥想课程，支持 ?category= 过滤
func (h *Handler) handleMeditations(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Meditations(r.URL.Query().Get("category")))
}

func (h *Handler) handleCategories(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.Categories())
}

// handleProfessionals 搜索专业人士，支持 ?q= 与 ?specialty=
func (h *Handler) handleProfessionals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	utils.RespondJSON(w, http.StatusOK, h.store.Professionals(q.Get("q"), q.Get("specialty")))
}
