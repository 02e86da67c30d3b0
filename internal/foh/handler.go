package foh

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/appetiteclub/foh/internal/board"
	"github.com/appetiteclub/foh/internal/counter"
	"github.com/appetiteclub/foh/internal/events"
	"github.com/appetiteclub/foh/internal/order"
	"github.com/appetiteclub/foh/internal/stream"
	"github.com/aquamarinepk/aqm"
	aqmevents "github.com/aquamarinepk/aqm/events"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	sessions    *order.SessionStore
	ticketStore counter.TicketStore
	tickets     *counter.TicketStateCache
	aggregator  *board.Aggregator
	overrides   *board.OverrideStore
	publisher   aqmevents.Publisher
	broadcaster *stream.Broadcaster
	sse         http.Handler
	logger      aqm.Logger
	config      *aqm.Config
	tlm         *telemetry.HTTP
}

type HandlerDeps struct {
	Sessions    *order.SessionStore
	TicketStore counter.TicketStore
	Tickets     *counter.TicketStateCache
	Aggregator  *board.Aggregator
	Overrides   *board.OverrideStore
	Publisher   aqmevents.Publisher
	Broadcaster *stream.Broadcaster
	SSE         http.Handler
}

func NewHandler(hd HandlerDeps, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		sessions:    hd.Sessions,
		ticketStore: hd.TicketStore,
		tickets:     hd.Tickets,
		aggregator:  hd.Aggregator,
		overrides:   hd.Overrides,
		publisher:   hd.Publisher,
		broadcaster: hd.Broadcaster,
		sse:         hd.SSE,
		logger:      logger,
		config:      config,
		tlm:         telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/board", func(r chi.Router) {
		r.Get("/", h.ListBoard)
		r.Get("/groups", h.ListBoardGroups)
		r.Get("/counts", h.BoardCounts)
		r.Put("/orders/{id}/waves/{wave}", h.OverrideWaveStatus)
		r.Delete("/orders/{id}/overrides", h.ClearOverrides)
		if h.sse != nil {
			r.Get("/stream", h.sse.ServeHTTP)
		}
	})

	r.Route("/tables", func(r chi.Router) {
		r.Get("/{tableID}", h.GetTable)
		r.Post("/{tableID}/seat", h.SeatTable)
		r.Post("/{tableID}/billing", h.StartBilling)
		r.Post("/{tableID}/settle", h.SettleTable)
		r.Post("/{tableID}/draft", h.AddDraftItems)
		r.Post("/{tableID}/send", h.SendDraft)
		r.Post("/{tableID}/notes", h.AddTableNote)
		r.Post("/{tableID}/waves/{wave}/fire", h.FireWave)
		r.Patch("/{tableID}/waves/{wave}/advance", h.AdvanceWave)
		r.Delete("/{tableID}/waves/{wave}", h.RemoveWave)
		r.Delete("/{tableID}/seats/{seat}", h.RemoveSeat)
		r.Patch("/{tableID}/items/{itemID}/serve", h.ServeItem)
		r.Patch("/{tableID}/items/{itemID}/void", h.VoidItem)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/", h.ListTickets)
		r.Get("/{token}", h.GetTicket)
		r.Patch("/{token}/preparing", h.TicketPreparing)
		r.Patch("/{token}/ready", h.TicketReady)
		r.Patch("/{token}/pickup", h.TicketPickedUp)
		r.Patch("/{token}/close", h.TicketClose)
		r.Patch("/{token}/refund", h.TicketRefund)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

// Board handlers

func (h *Handler) boardFilter(r *http.Request) board.Filter {
	q := r.URL.Query()
	f := board.Filter{
		Mode:   board.Mode(q.Get("mode")),
		Source: board.Source(q.Get("source")),
		Status: order.Status(q.Get("status")),
		Search: q.Get("q"),
	}
	return f.Normalize()
}

func (h *Handler) snapshot() []board.UnifiedOrder {
	return h.aggregator.Snapshot(time.Now(), h.overrides.Snapshot())
}

func (h *Handler) ListBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListBoard")
	defer finish()

	f := h.boardFilter(r)
	orders := board.Apply(h.snapshot(), f)

	response := map[string]interface{}{
		"mode":   f.Mode,
		"orders": orders,
		"total":  len(orders),
	}
	aqm.Respond(w, http.StatusOK, response, nil)
}

func (h *Handler) ListBoardGroups(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListBoardGroups")
	defer finish()

	f := h.boardFilter(r)
	groups := board.GroupByStatus(board.Apply(h.snapshot(), f), f.Mode)

	response := map[string]interface{}{
		"mode":   f.Mode,
		"groups": groups,
	}
	aqm.Respond(w, http.StatusOK, response, nil)
}

func (h *Handler) BoardCounts(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.BoardCounts")
	defer finish()

	f := h.boardFilter(r)
	snapshot := h.snapshot()

	response := map[string]interface{}{
		"mode":     f.Mode,
		"sources":  board.SourceCounts(snapshot, f),
		"statuses": board.StatusCounts(snapshot, f),
	}
	aqm.Respond(w, http.StatusOK, response, nil)
}

type WaveOverrideRequest struct {
	Status order.WaveStatus `json:"status"`
}

func validWaveStatus(s order.WaveStatus) bool {
	switch s {
	case order.WaveHeld, order.WaveFired, order.WaveCooking, order.WaveReady, order.WaveServed:
		return true
	}
	return false
}

// OverrideWaveStatus patches one wave of a unified order from the board side.
// Table orders get their unified status re-derived on the next snapshot;
// counter and demo orders take the raw wave replacement as-is.
func (h *Handler) OverrideWaveStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.OverrideWaveStatus")
	defer finish()
	log := h.log(r)

	orderID := chi.URLParam(r, "id")
	wave, err := strconv.Atoi(chi.URLParam(r, "wave"))
	if err != nil || wave < 1 {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid wave number")
		return
	}

	var req WaveOverrideRequest
	if !h.decode(w, r, log, &req) {
		return
	}
	if !validWaveStatus(req.Status) {
		log.Debug("invalid wave status", "status", req.Status)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid wave status")
		return
	}

	previous := h.findUnified(orderID)
	if previous == nil {
		aqm.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	h.overrides.Set(orderID, wave, req.Status)

	updated := h.findUnified(orderID)
	if updated == nil {
		aqm.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	if updated.Status != previous.Status {
		h.publishBoardChange(r.Context(), *updated, string(previous.Status))
	}
	aqm.Respond(w, http.StatusOK, updated, nil)
}

func (h *Handler) ClearOverrides(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ClearOverrides")
	defer finish()

	h.overrides.Clear(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) findUnified(orderID string) *board.UnifiedOrder {
	for _, o := range h.snapshot() {
		if o.ID == orderID {
			return &o
		}
	}
	return nil
}

// Table handlers

// TableView is the floor-facing projection of a session: the raw state plus
// everything derived from it on the fly.
type TableView struct {
	*order.Session
	Status         order.Status `json:"status"`
	Waves          []order.Wave `json:"waves"`
	Total          float64      `json:"total"`
	NextWave       int          `json:"next_fireable_wave"`
	ElapsedMinutes int          `json:"elapsed_minutes"`
}

func (h *Handler) tableView(s *order.Session) TableView {
	return TableView{
		Session:        s,
		Status:         s.Status(),
		Waves:          s.Waves(),
		Total:          s.Total(),
		NextWave:       s.NextFireableWave(),
		ElapsedMinutes: s.ElapsedMinutes(time.Now()),
	}
}

func (h *Handler) parseTableID(w http.ResponseWriter, r *http.Request, log aqm.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "tableID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid table id", "table_id", idStr)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid table ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request, log aqm.Logger) (*order.Session, bool) {
	id, ok := h.parseTableID(w, r, log)
	if !ok {
		return nil, false
	}
	session := h.sessions.Get(id)
	if session == nil {
		aqm.RespondError(w, http.StatusNotFound, "Table not found")
		return nil, false
	}
	return session, true
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetTable")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

type SeatRequest struct {
	PartySize   int    `json:"party_size"`
	TableNumber string `json:"table_number,omitempty"`
	Section     string `json:"section,omitempty"`
	GuestLabel  string `json:"guest_label,omitempty"`
}

func (h *Handler) SeatTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SeatTable")
	defer finish()
	log := h.log(r)

	id, ok := h.parseTableID(w, r, log)
	if !ok {
		return
	}

	var req SeatRequest
	if !h.decode(w, r, log, &req) {
		return
	}
	if req.PartySize < 1 {
		aqm.RespondError(w, http.StatusBadRequest, "party_size must be at least 1")
		return
	}

	session := h.sessions.Ensure(id)
	if req.TableNumber != "" {
		session.TableNumber = req.TableNumber
	}
	if req.Section != "" {
		session.Section = req.Section
	}
	session.GuestLabel = req.GuestLabel
	session.SeatParty(req.PartySize)

	log.Info("party seated", "table_id", id.String(), "party_size", req.PartySize)
	h.publishSessionChange(r.Context(), session, "")
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

func (h *Handler) StartBilling(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.StartBilling")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}

	previous := session.Status()
	session.StartBilling()

	log.Info("billing started", "table_id", session.TableID.String())
	h.publishSessionChange(r.Context(), session, string(previous))
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

func (h *Handler) SettleTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SettleTable")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}

	previous := session.Status()
	unifiedID := board.UnifiedID(board.SourceTable, session.ID.String())
	session.Settle()
	h.overrides.Clear(unifiedID)

	log.Info("table settled", "table_id", session.TableID.String())
	h.publishBoardChange(r.Context(), board.UnifiedOrder{
		ID:     unifiedID,
		Source: board.SourceTable,
		Status: order.StatusClosed,
	}, string(previous))
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

type DraftRequest struct {
	Items []order.DraftItem `json:"items"`
}

func (h *Handler) AddDraftItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddDraftItems")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	if !session.Occupied() {
		aqm.RespondError(w, http.StatusConflict, "Table has no seated party")
		return
	}

	var req DraftRequest
	if !h.decode(w, r, log, &req) {
		return
	}
	if len(req.Items) == 0 {
		aqm.RespondError(w, http.StatusBadRequest, "items are required")
		return
	}
	for _, item := range req.Items {
		if item.Name == "" {
			aqm.RespondError(w, http.StatusBadRequest, "item name is required")
			return
		}
	}

	session.AddDraft(req.Items...)
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

func (h *Handler) SendDraft(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SendDraft")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	if len(session.Draft) == 0 {
		aqm.RespondError(w, http.StatusConflict, "No draft items to send")
		return
	}

	previous := session.Status()
	session.SendDraft()

	log.Info("draft sent", "table_id", session.TableID.String())
	h.publishSessionChange(r.Context(), session, string(previous))
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

type NoteRequest struct {
	Content   string `json:"content"`
	CreatedBy string `json:"created_by,omitempty"`
}

func (h *Handler) AddTableNote(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddTableNote")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}

	var req NoteRequest
	if !h.decode(w, r, log, &req) {
		return
	}
	if req.Content == "" {
		aqm.RespondError(w, http.StatusBadRequest, "content is required")
		return
	}

	session.AddNote(req.Content, req.CreatedBy)
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

func (h *Handler) parseWaveParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	wave, err := strconv.Atoi(chi.URLParam(r, "wave"))
	if err != nil || wave < 1 {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid wave number")
		return 0, false
	}
	return wave, true
}

func (h *Handler) FireWave(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.FireWave")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	wave, ok := h.parseWaveParam(w, r)
	if !ok {
		return
	}

	previous := session.Status()
	session.Fire(wave)

	log.Info("wave fired", "table_id", session.TableID.String(), "wave", wave)
	h.publishSessionChange(r.Context(), session, string(previous))
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

type AdvanceRequest struct {
	Target order.ItemStatus `json:"target"`
}

func (h *Handler) AdvanceWave(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AdvanceWave")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	wave, ok := h.parseWaveParam(w, r)
	if !ok {
		return
	}

	var req AdvanceRequest
	if !h.decode(w, r, log, &req) {
		return
	}
	switch req.Target {
	case order.ItemCooking, order.ItemReady, order.ItemServed:
	default:
		log.Debug("invalid advance target", "target", req.Target)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid target status")
		return
	}

	previous := session.Status()
	session.Advance(wave, req.Target)

	h.publishSessionChange(r.Context(), session, string(previous))
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

func (h *Handler) RemoveWave(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveWave")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	wave, ok := h.parseWaveParam(w, r)
	if !ok {
		return
	}

	if refusal := session.RemoveWave(wave); refusal != nil {
		log.Info("wave removal refused", "table_id", session.TableID.String(), "wave", wave, "reason", refusal.Reason)
		aqm.Respond(w, http.StatusConflict, refusal, nil)
		return
	}
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

func (h *Handler) RemoveSeat(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RemoveSeat")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	seat, err := strconv.Atoi(chi.URLParam(r, "seat"))
	if err != nil || seat < 1 {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid seat number")
		return
	}

	if refusal := session.RemoveSeat(seat); refusal != nil {
		log.Info("seat removal refused", "table_id", session.TableID.String(), "seat", seat, "reason", refusal.Reason)
		aqm.Respond(w, http.StatusConflict, refusal, nil)
		return
	}
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

func (h *Handler) parseItemID(w http.ResponseWriter, r *http.Request, log aqm.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "itemID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid item id", "item_id", idStr)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid item ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) ServeItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ServeItem")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	itemID, ok := h.parseItemID(w, r, log)
	if !ok {
		return
	}

	previous := session.Status()
	session.MarkItemServed(itemID)

	h.publishSessionChange(r.Context(), session, string(previous))
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

func (h *Handler) VoidItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.VoidItem")
	defer finish()
	log := h.log(r)

	session, ok := h.loadSession(w, r, log)
	if !ok {
		return
	}
	itemID, ok := h.parseItemID(w, r, log)
	if !ok {
		return
	}

	previous := session.Status()
	session.VoidItem(itemID)

	log.Info("item voided", "table_id", session.TableID.String(), "item_id", itemID.String())
	h.publishSessionChange(r.Context(), session, string(previous))
	aqm.Respond(w, http.StatusOK, h.tableView(session), nil)
}

// Ticket handlers

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTickets")
	defer finish()

	var tickets []*counter.Ticket
	q := r.URL.Query()
	switch {
	case q.Get("status") != "":
		tickets = h.tickets.GetByStatus(counter.TicketStatus(q.Get("status")))
	case q.Get("service") != "":
		tickets = h.tickets.GetByService(counter.ServiceType(q.Get("service")))
	default:
		tickets = h.tickets.GetAll()
	}

	response := map[string]interface{}{
		"tickets": tickets,
		"total":   len(tickets),
	}
	aqm.Respond(w, http.StatusOK, response, nil)
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetTicket")
	defer finish()
	log := h.log(r)

	token := chi.URLParam(r, "token")
	ticket := h.tickets.Get(token)
	if ticket == nil {
		var err error
		ticket, err = h.ticketStore.FindByToken(r.Context(), token)
		if err != nil {
			log.Debug("ticket not found", "token", token)
			aqm.RespondError(w, http.StatusNotFound, "Ticket not found")
			return
		}
	}
	aqm.Respond(w, http.StatusOK, ticket, nil)
}

func (h *Handler) TicketPreparing(w http.ResponseWriter, r *http.Request) {
	h.updateTicket(w, r, "Handler.TicketPreparing", func(t *counter.Ticket) { t.MarkAsPreparing() })
}

func (h *Handler) TicketReady(w http.ResponseWriter, r *http.Request) {
	h.updateTicket(w, r, "Handler.TicketReady", func(t *counter.Ticket) { t.MarkAsReady() })
}

func (h *Handler) TicketPickedUp(w http.ResponseWriter, r *http.Request) {
	h.updateTicket(w, r, "Handler.TicketPickedUp", func(t *counter.Ticket) { t.MarkAsPickedUp() })
}

func (h *Handler) TicketClose(w http.ResponseWriter, r *http.Request) {
	h.updateTicket(w, r, "Handler.TicketClose", func(t *counter.Ticket) { t.Close() })
}

func (h *Handler) TicketRefund(w http.ResponseWriter, r *http.Request) {
	h.updateTicket(w, r, "Handler.TicketRefund", func(t *counter.Ticket) { t.Refund() })
}

func (h *Handler) updateTicket(w http.ResponseWriter, r *http.Request, span string, transition func(*counter.Ticket)) {
	w, r, finish := h.tlm.Start(w, r, span)
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	token := chi.URLParam(r, "token")
	ticket, err := h.ticketStore.FindByToken(ctx, token)
	if err != nil {
		log.Errorf("cannot find ticket: %v", err)
		aqm.RespondError(w, http.StatusNotFound, "Ticket not found")
		return
	}

	previous := ticket.Status
	transition(ticket)

	if err := h.ticketStore.Save(ctx, ticket); err != nil {
		log.Errorf("cannot save ticket: %v", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not update ticket")
		return
	}
	h.tickets.Set(ticket)

	if ticket.Status != previous {
		h.publishTicketChange(ctx, ticket, previous)
	}
	aqm.Respond(w, http.StatusOK, ticket, nil)
}

// Helpers

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, log aqm.Logger, target interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("failed to read request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, target); err != nil {
		log.Debug("failed to decode request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return false
	}
	return true
}

func (h *Handler) publishSessionChange(ctx context.Context, s *order.Session, previousStatus string) {
	o := board.FromSession(s)
	if string(o.Status) == previousStatus {
		return
	}
	h.publishBoardChange(ctx, o, previousStatus)
}

func (h *Handler) publishTicketChange(ctx context.Context, t *counter.Ticket, previous counter.TicketStatus) {
	prev := counter.Ticket{Status: previous}
	h.publishBoardChange(ctx, board.FromTicket(t), string(prev.UnifiedStatus()))
}

func (h *Handler) publishBoardChange(ctx context.Context, o board.UnifiedOrder, previousStatus string) {
	evt := events.BoardOrderChangedEvent{
		EventType:      events.EventBoardOrderChanged,
		OrderID:        o.ID,
		Source:         string(o.Source),
		NewStatus:      string(o.Status),
		PreviousStatus: previousStatus,
		OccurredAt:     time.Now().UTC(),
	}

	if h.broadcaster != nil {
		h.broadcaster.Publish(evt)
	}

	if h.publisher == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Errorf("cannot marshal board event: %v", err)
		return
	}
	if err := h.publisher.Publish(ctx, events.BoardOrdersTopic, payload); err != nil {
		h.logger.Errorf("cannot publish board event: %v", err)
	}
}
