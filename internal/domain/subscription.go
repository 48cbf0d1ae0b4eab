package domain

// SubscriptionPlan identifies one of the fixed plan tiers.
type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanBasic   SubscriptionPlan = "basic"
	PlanPro     SubscriptionPlan = "pro"
	PlanAdvance SubscriptionPlan = "advance"
)

// FeatureFlag names a gated capability on a plan.
type FeatureFlag string

const (
	FeatureTransactionLimit FeatureFlag = "transactionLimit"
	FeatureMaxUsers         FeatureFlag = "maxUsers"
	FeatureDailyReport      FeatureFlag = "dailyReport"
	FeatureDailyBackup      FeatureFlag = "dailyBackup"
	FeatureOpenCloseDaily   FeatureFlag = "openCloseDaily"
	FeatureReportExport     FeatureFlag = "reportExport"
	FeatureReceiptExport    FeatureFlag = "receiptExport"
	FeaturePrioritySupport  FeatureFlag = "prioritySupport"
	FeatureMultiOutlet      FeatureFlag = "multiOutlet"
	FeatureSplitView        FeatureFlag = "splitView"
	FeatureSalesOrder       FeatureFlag = "salesOrder"
	FeatureCustomFeatures   FeatureFlag = "customFeatures"
)

// PlanFeatures is the feature table for one plan. TransactionLimit nil
// means unlimited.
type PlanFeatures struct {
	Name             string `json:"name"`
	Price            string `json:"price"`
	TransactionLimit *int   `json:"transaction_limit"`
	MaxUsers         int    `json:"max_users"`
	DailyReport      bool   `json:"daily_report"`
	DailyBackup      bool   `json:"daily_backup"`
	OpenCloseDaily   bool   `json:"open_close_daily"`
	ReportExport     bool   `json:"report_export"`
	ReceiptExport    bool   `json:"receipt_export"`
	PrioritySupport  bool   `json:"priority_support"`
	MultiOutlet      bool   `json:"multi_outlet"`
	SplitView        bool   `json:"split_view"`
	SalesOrder       bool   `json:"sales_order"`
	CustomFeatures   bool   `json:"custom_features"`
}

func intPtr(n int) *int { return &n }

// planFeatures is total: every plan has a complete row.
var planFeatures = map[SubscriptionPlan]PlanFeatures{
	PlanFree: {
		Name:             "Free",
		Price:            "Rp 0",
		TransactionLimit: intPtr(25),
		MaxUsers:         1,
	},
	PlanBasic: {
		Name:           "Basic",
		Price:          "Rp 60K/mo",
		MaxUsers:       1,
		DailyReport:    true,
		DailyBackup:    true,
		OpenCloseDaily: true,
	},
	PlanPro: {
		Name:            "Pro",
		Price:           "Rp 120K/mo",
		MaxUsers:        3,
		DailyReport:     true,
		DailyBackup:     true,
		OpenCloseDaily:  true,
		ReportExport:    true,
		ReceiptExport:   true,
		PrioritySupport: true,
	},
	PlanAdvance: {
		Name:            "Advance",
		Price:           "From Rp 160K/mo",
		MaxUsers:        999,
		DailyReport:     true,
		DailyBackup:     true,
		OpenCloseDaily:  true,
		ReportExport:    true,
		ReceiptExport:   true,
		PrioritySupport: true,
		MultiOutlet:     true,
		SplitView:       true,
		SalesOrder:      true,
		CustomFeatures:  true,
	},
}

// FeaturesFor returns the feature table for a plan. Unknown plans fall back
// to the free tier so the table stays a total function.
func FeaturesFor(plan SubscriptionPlan) PlanFeatures {
	if f, ok := planFeatures[plan]; ok {
		return f
	}
	return planFeatures[PlanFree]
}

// Enabled reports whether a single flag counts as enabled: booleans as-is,
// numeric values when > 0, nil limits (unlimited) always.
func (f PlanFeatures) Enabled(flag FeatureFlag) bool {
	switch flag {
	case FeatureTransactionLimit:
		return f.TransactionLimit == nil || *f.TransactionLimit > 0
	case FeatureMaxUsers:
		return f.MaxUsers > 0
	case FeatureDailyReport:
		return f.DailyReport
	case FeatureDailyBackup:
		return f.DailyBackup
	case FeatureOpenCloseDaily:
		return f.OpenCloseDaily
	case FeatureReportExport:
		return f.ReportExport
	case FeatureReceiptExport:
		return f.ReceiptExport
	case FeaturePrioritySupport:
		return f.PrioritySupport
	case FeatureMultiOutlet:
		return f.MultiOutlet
	case FeatureSplitView:
		return f.SplitView
	case FeatureSalesOrder:
		return f.SalesOrder
	case FeatureCustomFeatures:
		return f.CustomFeatures
	default:
		return false
	}
}
