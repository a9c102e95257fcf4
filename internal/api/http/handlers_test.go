package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"travana-referral-dashboard/internal/domain"
	"travana-referral-dashboard/internal/service"
)

func TestReferralHandler_ListReferrals(t *testing.T) {
	ts := newTestServer(nil)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.referral.On("ListReferrals", mock.Anything, verified, "user-1", domain.ReferralFilter{Search: "ada", Status: "booked", Since: since}).
		Return([]domain.Referral{{ID: "r1", Status: domain.StatusBooked}}, nil)
	ts.referral.On("ListReferrals", mock.Anything, verified, "user-9", domain.ReferralFilter{}).
		Return(nil, domain.ErrForbidden)

	rec := ts.do(http.MethodGet, "/api/referrals/user/user-1?search=ada&status=booked&since=2024-01-01", "verified", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Referral
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = ts.do(http.MethodGet, "/api/referrals/user/user-1?since=yesterday", "verified", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "since", decodeError(t, rec).Field)

	rec = ts.do(http.MethodGet, "/api/referrals/user/user-9", "verified", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReferralHandler_ListReferralRequests(t *testing.T) {
	ts := newTestServer(nil)
	ts.referral.On("ListReferralRequests", mock.Anything, verified, "user-1").
		Return([]domain.ReferralRequest{{ID: "q1", ReferredName: "Grace", ReferredStatus: domain.RequestStatusApproved}}, nil)
	ts.referral.On("ListReferralRequests", mock.Anything, verified, "user-3").Return(nil, nil)

	rec := ts.do(http.MethodGet, "/api/referrals/user-1?format=referral", "verified", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var refs []domain.Referral
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refs))
	require.Len(t, refs, 1)
	assert.Equal(t, "Grace", refs[0].ReferredName)

	rec = ts.do(http.MethodGet, "/api/referrals/user-3", "verified", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestReferralHandler_CreateReferral(t *testing.T) {
	ts := newTestServer(nil)
	in := domain.CreateReferralInput{ReferredName: "Grace", ReferredEmail: "grace@example.com"}
	ts.referral.On("SubmitReferral", mock.Anything, verified, in).
		Return(&domain.CreateReferralResult{Referral: &domain.Referral{ID: "new"}, FollowUpURL: "https://chat.whatsapp.com/x"}, nil)
	ts.referral.On("SubmitReferral", mock.Anything, verified, domain.CreateReferralInput{ReferredName: "Grace", ReferredEmail: "nope"}).
		Return(nil, domain.NewValidationError("referredEmail", "Please enter a valid email address"))

	rec := ts.do(http.MethodPost, "/api/referrals", "verified", `{"referredName":"Grace","referredEmail":"grace@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"followUpUrl":"https://chat.whatsapp.com/x"`)

	rec = ts.do(http.MethodPost, "/api/referrals", "verified", `{"referredName":"Grace","referredEmail":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "referredEmail", body.Field)
	assert.Equal(t, "Please enter a valid email address", body.Error)

	rec = ts.do(http.MethodPost, "/api/referrals", "verified", `{"referredName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(http.MethodPost, "/api/referrals", "verified", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReferralHandler_UpdateStatus(t *testing.T) {
	ts := newTestServer(nil)
	ts.referral.On("UpdateStatus", mock.Anything, verified, "r1", domain.StatusBooked).
		Return(&domain.Referral{ID: "r1", Status: domain.StatusBooked}, nil)
	ts.referral.On("UpdateStatus", mock.Anything, verified, "r2", domain.StatusLost).Return(nil, nil)
	ts.referral.On("UpdateStatus", mock.Anything, verified, "r3", domain.StatusEnquiry).Return(nil, domain.ErrInvalidTransition)

	rec := ts.do(http.MethodPut, "/api/referrals/r1/status", "verified", `{"status":"booked"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"booked"`)

	rec = ts.do(http.MethodPut, "/api/referrals/r2/status", "verified", `{"status":"lost"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"r2","status":"lost"}`, rec.Body.String())

	rec = ts.do(http.MethodPut, "/api/referrals/r3/status", "verified", `{"status":"enquiry"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReferralHandler_PublicForm(t *testing.T) {
	ts := newTestServer(nil)
	in := domain.CreateReferralInput{ReferredName: "Grace", ReferredEmail: "grace@example.com"}
	ts.referral.On("SubmitPublicReferral", mock.Anything, "user-1", in).
		Return(&domain.CreateReferralResult{Referral: &domain.Referral{ID: "pub"}}, nil)

	rec := ts.do(http.MethodGet, "/public-client-request", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Referral code is required", decodeError(t, rec).Error)

	rec = ts.do(http.MethodGet, "/public-client-request?ref=user-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ref":"user-1","referredBy":"user-1"}`, rec.Body.String())

	rec = ts.do(http.MethodGet, "/public-client-request?ref=%20%20", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/public-client-request?ref=user-1", "", `{"referredName":"Grace","referredEmail":"grace@example.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestShareHandler(t *testing.T) {
	ts := newTestServer(nil)
	ts.share.On("SetShareMessageActive", mock.Anything, verified, domain.PlatformEmail, false).Return(nil)
	ts.share.On("ResetShareMessage", mock.Anything, verified, domain.PlatformWhatsApp).Return(nil)
	ts.share.On("PreviewShareMessage", mock.Anything, verified, domain.PlatformLinkedIn).
		Return(&domain.SharePreview{Platform: domain.PlatformLinkedIn, Message: "hello"}, nil)
	ts.share.On("SendShareEmail", mock.Anything, verified, "friend@example.com").Return(nil)
	ts.share.On("SendShareEmail", mock.Anything, verified, "other@example.com").Return(service.ErrEmailDisabled)

	rec := ts.do(http.MethodPatch, "/api/share-messages/email", "verified", `{"isActive":false}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodPatch, "/api/share-messages/email", "verified", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "isActive", decodeError(t, rec).Field)

	rec = ts.do(http.MethodDelete, "/api/share-messages/whatsapp", "verified", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, "/api/share-messages/linkedin/preview", "verified", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"hello"`)

	rec = ts.do(http.MethodPost, "/api/share/email", "verified", `{"to":"friend@example.com"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = ts.do(http.MethodPost, "/api/share/email", "verified", `{"to":"other@example.com"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	ts.share.AssertExpectations(t)
}

func TestOrganizationHandler_AcceptInvitation(t *testing.T) {
	ts := newTestServer(nil)
	ts.member.On("AcceptInvitation", mock.Anything, unverified, "inv-1", "new@example.com").
		Return(&domain.Member{ID: "m1", OrganizationID: "org-1"}, nil)
	ts.member.On("AcceptInvitation", mock.Anything, unverified, "inv-2", "someone@example.com").
		Return(nil, domain.ErrInvitationEmailMismatch)

	rec := ts.do(http.MethodPost, "/api/invitations/inv-1/accept?email=new@example.com", "unverified", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/dashboard"`)

	rec = ts.do(http.MethodPost, "/api/invitations/inv-2/accept", "unverified", `{"email":"someone@example.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "sign_out", decodeError(t, rec).Action)
}

func TestOrganizationHandler_Members(t *testing.T) {
	ts := newTestServer(nil)
	ts.member.On("ListMembers", mock.Anything, verified).Return(nil, domain.ErrNoOrganization)
	ts.member.On("InviteMember", mock.Anything, verified, domain.InviteMemberInput{Email: "x@example.com", Role: domain.RoleAdmin}).
		Return(nil, nil)

	rec := ts.do(http.MethodGet, "/api/org/members", "verified", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodPost, "/api/org/invitations", "verified", `{"email":"x@example.com","role":"admin"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"invited"}`, rec.Body.String())
}

func TestAuthHandler(t *testing.T) {
	ts := newTestServer(nil)
	ts.account.On("SignIn", mock.Anything, domain.SignInInput{Email: "ada@example.com", Password: "secret1"}).
		Return(&domain.Session{User: domain.User{ID: "user-1"}, Token: "fresh"}, nil)
	ts.account.On("ChangePassword", mock.Anything, unverified, mock.Anything).Return(nil)
	ts.account.On("ResendVerification", mock.Anything, "new@example.com").Return(nil)
	ts.account.On("VerifyEmail", mock.Anything, "vt").Return(nil)

	rec := ts.do(http.MethodPost, "/api/auth/sign-in", "", `{"email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "fresh", body.Token)

	rec = ts.do(http.MethodPost, "/api/auth/change-password", "unverified", `{"oldPassword":"a","newPassword":"bbbbbb"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodPost, "/api/auth/send-verification-email", "", `{"email":"new@example.com"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = ts.do(http.MethodPost, "/api/auth/verify-email", "", `{"token":"vt"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"redirect":"/dashboard"}`, rec.Body.String())
}
