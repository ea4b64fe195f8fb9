package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-trade-order-service/internal/usecase/dto/order"
	usecase "github.com/LavaJover/shvark-trade-order-service/internal/usecase/order"
)

type OrderHandler struct {
	uc usecase.OrderUsecase
}

func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{
		uc: uc,
	}
}

func caller(r *http.Request) (domain.Caller, error) {
	c, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		return domain.Caller{}, domain.NewUnauthenticatedError("Authentication required")
	}
	return c, nil
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input orderdto.CreateOrderInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.uc.CreateOrder(r.Context(), c, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, out)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.uc.GetOrderByID(r.Context(), c, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	input, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.uc.ListOrders(r.Context(), c, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var input orderdto.UpdateOrderStatusInput
	if err := decodeBody(w, r, &input); err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.uc.UpdateOrderStatus(r.Context(), c, orderID, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *OrderHandler) GetOrderCount(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.uc.CountUserOrders(r.Context(), c, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *OrderHandler) GetRecentOrders(w http.ResponseWriter, r *http.Request) {
	c, err := caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.uc.GetRecentOrders(r.Context(), c, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, out)
}
