package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/MarcinSar/veteyealk/airtable"
	"github.com/MarcinSar/veteyealk/calendar"
	"github.com/MarcinSar/veteyealk/store"
)

func (s *Service) handleWelcome(ctx *Context, message string) string {
	if isYes(message) {
		ctx.GDPRConsent = true
		if s.setState(ctx, StateDeviceVerification) {
			return consentAcceptedReply
		}
		return "Przepraszam, wystąpił błąd podczas przetwarzania zgody. Spróbuj ponownie."
	}
	if isNo(message) {
		return fmt.Sprintf(consentDeclinedReply, s.Config.ServicePhone, s.Config.ServiceEmail)
	}
	if ctx.GDPRConsent {
		return needSerialReply
	}
	return consentClarifyReply
}

func (s *Service) handleDeviceVerification(gctx context.Context, ctx *Context, message string) string {
	lowered := strings.ToLower(message)
	if !strings.HasPrefix(lowered, "sn:") && !strings.HasPrefix(lowered, "sn ") {
		return needSerialReply
	}

	device, err := s.Airtable.DeviceBySerial(gctx, message)
	if err != nil {
		if errors.Is(err, airtable.ErrNotFound) {
			msg := fmt.Sprintf("Nie znaleziono urządzenia o numerze seryjnym: %s", airtable.CleanSerial(message))
			return fmt.Sprintf(deviceNotFoundReply, msg)
		}
		s.Logger.WithFields(logrus.Fields{
			"session_id": ctx.SessionID,
			"error":      err.Error(),
		}).Error("device verification failed")
		return fmt.Sprintf(deviceNotFoundReply, "Wystąpił błąd podczas weryfikacji urządzenia")
	}

	ctx.Device = &device
	warranty := device.WarrantyStatus
	if warranty == "" {
		warranty = "Brak informacji"
	}
	model := device.Model
	if model == "" {
		model = "Nieznany model"
	}
	s.setState(ctx, StateIssueAnalysis)
	return fmt.Sprintf(deviceVerifiedReply, model, warranty)
}

func (s *Service) handleIssueAnalysis(gctx context.Context, ctx *Context, message string) string {
	model := "unknown"
	if ctx.Device != nil && ctx.Device.Model != "" {
		model = ctx.Device.Model
	}

	check := s.AI.IsOnTopic(gctx, message)
	if !check.IsOnTopic {
		s.Logger.WithField("session_id", ctx.SessionID).Warn("off-topic question detected")
		return check.Response
	}

	// Very short descriptions cannot be diagnosed, ask for more.
	words := 0
	for _, w := range strings.Fields(message) {
		if len(w) > 1 {
			words++
		}
	}
	if words < 3 && len(message) < 20 {
		return moreDetailsReply
	}

	solutions, _ := s.Knowledge.FindSolution(model, message)
	s.Logger.WithFields(logrus.Fields{
		"session_id": ctx.SessionID,
		"solutions":  len(solutions),
	}).Info("knowledge base searched")

	analysis := s.AI.AnalyzeWithKnowledge(gctx, model, message, solutions)
	ctx.IssueDescription = message

	if s.setState(ctx, StateCheckResolution) {
		return analysis.Solution + "\n\n" + resolutionQuestion
	}
	return "Przepraszam, wystąpił błąd podczas analizy problemu. Spróbuj ponownie."
}

// stillBrokenPhrases signal the proposed fix did not work even without
// a literal "nie".
var stillBrokenPhrases = []string{"nadal", "wciąż", "dalej", "nie pomogło", "nie działa"}

func (s *Service) handleCheckResolution(ctx *Context, message string) string {
	if isYes(message) {
		s.setState(ctx, StateEnd)
		return resolvedReply
	}

	lowered := strings.ToLower(message)
	stillBroken := isNo(message)
	for _, phrase := range stillBrokenPhrases {
		if strings.Contains(lowered, phrase) {
			stillBroken = true
		}
	}

	class := classifyProblem(ctx.IssueDescription)

	if stillBroken {
		if !isNo(message) {
			ctx.appendAdditionalInfo(message)
		}
		ctx.Attempts++
		if ctx.Attempts > 2 {
			s.setState(ctx, StateIssueReported)
			return escalateToServiceReply
		}
		if ctx.Attempts == 1 {
			return firstAttemptQuestions(class)
		}
		return secondAttemptSolutions(class)
	}

	// Not a clear yes or no, treat it as extra diagnostic detail.
	ctx.appendAdditionalInfo(message)
	return freeformSolutions(class)
}

func (c *Context) appendAdditionalInfo(message string) {
	if c.AdditionalInfo == "" {
		c.AdditionalInfo = message
		return
	}
	c.AdditionalInfo += "\n" + message
}

func (s *Service) handleIssueReported(ctx *Context, message string) string {
	if isYes(message) {
		s.setState(ctx, StateServiceScheduling)
		return scheduleOfferAcceptedReply
	}
	if isNo(message) {
		s.setState(ctx, StateEnd)
		return scheduleDeclinedEndReply
	}
	return scheduleClarifyReply
}

func (s *Service) handleServiceScheduling(gctx context.Context, ctx *Context, message string) string {
	if isYes(message) && !ctx.ShowingSlots {
		return s.offerSlots(gctx, ctx)
	}
	if isYes(message) && ctx.ShowingSlots {
		return pickFromListReply
	}
	if isNo(message) {
		return schedulingDeclinedReply
	}

	if ctx.AwaitingPreferred {
		return s.handlePreferredTime(gctx, ctx, message)
	}

	if ctx.ShowingSlots {
		if strings.EqualFold(strings.TrimSpace(message), "inne") {
			ctx.AwaitingPreferred = true
			return customSlotContactReply
		}
		number, err := strconv.Atoi(strings.TrimSpace(message))
		if err != nil {
			return slotNotNumberReply
		}
		if number < 1 || number > len(ctx.AvailableSlots) {
			return fmt.Sprintf("Proszę wybrać numer z zakresu 1-%d.", len(ctx.AvailableSlots))
		}
		slot := ctx.AvailableSlots[number-1]
		ctx.SelectedSlot = &slot
		ctx.DataStep = "name"
		s.setState(ctx, StateCollectCustomerInfo)
		return slotChosenReply
	}

	return showSlotsQuestion
}

func (s *Service) offerSlots(gctx context.Context, ctx *Context) string {
	occupied, err := s.Airtable.OccupiedSlots(gctx)
	if err != nil {
		s.Logger.WithFields(logrus.Fields{
			"session_id": ctx.SessionID,
			"error":      err.Error(),
		}).Error("fetching occupied slots failed")
		return fmt.Sprintf("Przepraszam, wystąpił błąd podczas generowania terminów: %s", err)
	}

	slots := s.Calendar.AvailableSlots(occupied)
	if len(slots) == 0 {
		return noSlotsReply
	}

	ctx.AvailableSlots = slots
	ctx.ShowingSlots = true
	ctx.AwaitingPreferred = false

	var b strings.Builder
	b.WriteString(slotsIntro)
	for _, line := range calendar.FormatSlots(slots) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(slotsOutro)
	return b.String()
}

func (s *Service) handlePreferredTime(gctx context.Context, ctx *Context, message string) string {
	if strings.EqualFold(strings.TrimSpace(message), "pokaż wszystkie") {
		ctx.AwaitingPreferred = false
		return s.offerSlots(gctx, ctx)
	}

	preferred, ok := s.Calendar.ParsePreferredTime(message)
	if !ok {
		return badPreferredFormatReply
	}

	occupied, err := s.Airtable.OccupiedSlots(gctx)
	if err != nil {
		s.Logger.WithFields(logrus.Fields{
			"session_id": ctx.SessionID,
			"error":      err.Error(),
		}).Error("fetching occupied slots failed")
		occupied = nil
	}

	slots := s.Calendar.SlotsAround(preferred, 2, occupied)
	if len(slots) == 0 {
		return noPreferredSlotsReply
	}

	ctx.AvailableSlots = slots
	ctx.AwaitingPreferred = false
	ctx.ShowingSlots = true

	var b strings.Builder
	b.WriteString(preferredSlotsIntro)
	for i, slot := range slots {
		fmt.Fprintf(&b, "%d. %s\n", i+1, calendar.FormatSlot(slot))
	}
	b.WriteString(preferredSlotsOutro)
	return b.String()
}

func (s *Service) handleCollectCustomerInfo(ctx *Context, message string) string {
	switch ctx.DataStep {
	case "name":
		ctx.Customer.Name = message
		ctx.DataStep = "phone"
		return askPhoneReply
	case "phone":
		digits := strings.NewReplacer(" ", "", "-", "").Replace(message)
		if len(digits) < 9 {
			return badPhoneReply
		}
		ctx.Customer.Phone = message
		ctx.DataStep = "email"
		return askEmailReply
	case "email":
		if !strings.Contains(message, "@") || !strings.Contains(message, ".") {
			return badEmailReply
		}
		ctx.Customer.Email = message
		ctx.DataStep = "address"
		return askAddressReply
	case "address":
		ctx.Customer.Address = message
		if ctx.SelectedSlot == nil {
			ctx.DataStep = "name"
			return collectRestartReply
		}
		s.setState(ctx, StateConfirmation)
		return fmt.Sprintf(confirmDataReply,
			ctx.Customer.Name, ctx.Customer.Phone, ctx.Customer.Email, ctx.Customer.Address,
			ctx.SelectedSlot.Format(calendar.DisplayLayout))
	}
	ctx.DataStep = "name"
	return collectRestartReply
}

func (s *Service) handleConfirmation(gctx context.Context, ctx *Context, message string) string {
	if isYes(message) {
		reply, err := s.bookVisit(gctx, ctx)
		if err != nil {
			s.Logger.WithFields(logrus.Fields{
				"session_id": ctx.SessionID,
				"error":      err.Error(),
			}).Error("booking service visit failed")
			return fmt.Sprintf("Przepraszam, wystąpił błąd podczas dodawania wizyty: %s", err)
		}
		return reply
	}
	if isNo(message) {
		ctx.DataStep = "name"
		s.setState(ctx, StateCollectCustomerInfo)
		return fixDataReply
	}
	return confirmClarifyReply
}

func (s *Service) bookVisit(gctx context.Context, ctx *Context) (string, error) {
	if ctx.SelectedSlot == nil || ctx.Device == nil {
		return "", fmt.Errorf("missing visit slot or verified device")
	}
	slot := *ctx.SelectedSlot

	description := fmt.Sprintf("Model: %s\nSN: %s\nProblem: %s\n\nKlient:\n%s\nTel: %s\nEmail: %s\nAdres: %s",
		ctx.Device.Model, ctx.Device.SerialNumber, ctx.IssueDescription,
		ctx.Customer.Name, ctx.Customer.Phone, ctx.Customer.Email, ctx.Customer.Address)

	_, link, err := s.Airtable.CreateCalendarEvent(gctx, airtable.CalendarEvent{
		DateTime:        slot,
		Summary:         "Wizyta serwisowa - " + ctx.Customer.Name,
		Description:     description,
		DeviceModel:     ctx.Device.Model,
		CustomerName:    ctx.Customer.Name,
		CustomerPhone:   ctx.Customer.Phone,
		CustomerEmail:   ctx.Customer.Email,
		CustomerAddress: ctx.Customer.Address,
	})
	if err != nil {
		return "", err
	}

	rec, err := s.Airtable.CreateServiceRequest(gctx, airtable.ServiceRequest{
		DeviceRecordID: ctx.Device.RecordID,
		Description:    ctx.IssueDescription,
		ScheduledAt:    &slot,
	})
	if err != nil {
		// The calendar entry exists, so the visit is booked. Log and
		// carry on rather than failing the whole confirmation.
		s.Logger.WithFields(logrus.Fields{
			"session_id": ctx.SessionID,
			"error":      err.Error(),
		}).Error("creating airtable service request failed")
	}

	saved := &store.ServiceRequest{
		SessionID:        ctx.SessionID,
		AirtableRecordID: rec.ID,
		SerialNumber:     ctx.Device.SerialNumber,
		DeviceModel:      ctx.Device.Model,
		Description:      ctx.IssueDescription,
		CustomerName:     ctx.Customer.Name,
		CustomerPhone:    ctx.Customer.Phone,
		CustomerEmail:    ctx.Customer.Email,
		CustomerAddress:  ctx.Customer.Address,
		Status:           airtable.StatusScheduled,
		ScheduledAt:      &slot,
		CalendarLink:     link,
	}
	if err := s.Db.SaveServiceRequest(gctx, saved); err != nil {
		s.Logger.WithFields(logrus.Fields{
			"session_id": ctx.SessionID,
			"error":      err.Error(),
		}).Error("persisting service request failed")
	}

	if s.Push != nil {
		s.Push.VisitBooked(gctx, "service_visits", ctx.Customer.Name, slot)
	}

	s.setState(ctx, StateEnd)
	return bookedReply, nil
}

func (s *Service) handleEnd(ctx *Context, message string) string {
	if isYes(message) {
		fresh := newContext(ctx.SessionID)
		*ctx = *fresh
		return newConversationReply
	}
	return goodbyeReply
}
