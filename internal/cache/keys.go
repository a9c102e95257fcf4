package cache

const (
	PrefixReferrals   = "referrals:"
	PrefixRequests    = "requests:"
	PrefixStats       = "stats:"
	PrefixCommission  = "commission:"
	PrefixMonthly     = "monthly:"
	PrefixMembers     = "members:"
	PrefixOrgs        = "orgs:"
	PrefixInvitations = "invitations:"
)

func ReferralsKey(userID string) string { return PrefixReferrals + userID }
func RequestsKey(userID string) string { return PrefixRequests + userID }
func StatsKey(userID string) string { return PrefixStats + userID }
func CommissionKey(userID string) string { return PrefixCommission + userID }
func MonthlyKey(userID string) string { return PrefixMonthly + userID }
func MembersKey(orgID string) string { return PrefixMembers + orgID }
func OrgsKey(userID string) string { return PrefixOrgs + userID }
func InvitationsKey(orgID string) string { return PrefixInvitations + orgID }
