package model

type UserRole string

const (
	RoleFounder     UserRole = "founder"
	RoleFacilitator UserRole = "facilitator"
	RoleAdmin       UserRole = "admin"
)

// IsModerator reports whether the role may run cohort sessions and moderate chat.
func (r UserRole) IsModerator() bool {
	return r == RoleFacilitator || r == RoleAdmin
}

type GoalType string

const (
	GoalTypePublic  GoalType = "public"
	GoalTypePrivate GoalType = "private"
)

func (t GoalType) Valid() bool {
	return t == GoalTypePublic || t == GoalTypePrivate
}

type GoalStatus string

const (
	GoalStatusPending GoalStatus = "pending"
	GoalStatusDone    GoalStatus = "done"
	GoalStatusPartial GoalStatus = "partial"
	GoalStatusNotDone GoalStatus = "not_done"
)

type CheckInStatus string

const (
	CheckInStatusDone    CheckInStatus = "done"
	CheckInStatusPartial CheckInStatus = "partial"
	CheckInStatusNotDone CheckInStatus = "not_done"
)

func (s CheckInStatus) Valid() bool {
	return s == CheckInStatusDone || s == CheckInStatusPartial || s == CheckInStatusNotDone
}

type SupportType string

const (
	SupportTypeSupport SupportType = "support"
	SupportTypeHelp    SupportType = "help"
	SupportTypeEndorse SupportType = "endorse"
)

func (t SupportType) Valid() bool {
	return t == SupportTypeSupport || t == SupportTypeHelp || t == SupportTypeEndorse
}

type RSVPStatus string

const (
	RSVPYes   RSVPStatus = "yes"
	RSVPMaybe RSVPStatus = "maybe"
	RSVPNo    RSVPStatus = "no"
)

func (s RSVPStatus) Valid() bool {
	return s == RSVPYes || s == RSVPMaybe || s == RSVPNo
}
