// Package i18n serves the dashboard's English and Hindi label tables.
package i18n

import (
	"golang.org/x/text/language"
)

const (
	English = "en"
	Hindi   = "hi"
)

// supported is ordered by preference; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Hindi}

var codes = []string{English, Hindi}

var matcher = language.NewMatcher(supported)

var tables = map[string]map[string]string{
	English: {
		"appName":             "Kesharwani Kirana Store Telecom",
		"tagline":             "Trusted telecom distributor for over 20 years",
		"login":               "Login",
		"register":            "Register",
		"email":               "Email",
		"password":            "Password",
		"name":                "Name",
		"phone":               "Phone",
		"role":                "Role",
		"distributor":         "Distributor",
		"agent":               "Field Agent",
		"retailer":            "Retailer/POS",
		"dashboard":           "Dashboard",
		"products":            "Products",
		"requests":            "Requests",
		"logout":              "Logout",
		"darkMode":            "Dark Mode",
		"language":            "Language",
		"totalProducts":       "Total Products",
		"pendingRequests":     "Pending Requests",
		"approvedRequests":    "Approved Requests",
		"fulfilledRequests":   "Fulfilled Requests",
		"createProduct":       "Create Product",
		"requestProduct":      "Request Product",
		"type":                "Type",
		"code":                "Code",
		"serialNumber":        "Serial Number",
		"price":               "Price",
		"status":              "Status",
		"sim":                 "SIM",
		"mobile":              "Mobile",
		"fiber":               "Fiber",
		"quantity":            "Quantity",
		"reason":              "Reason",
		"submit":              "Submit",
		"orderId":             "Order ID",
		"date":                "Date",
		"stock":               "Stock",
		"currentStock":        "Current Stock",
		"stockTransactions":   "Stock Transactions",
		"resetStock":          "Reset All Stock",
		"selectAgent":         "Select Agent",
		"myRequests":          "My Requests",
		"retailerRequests":    "Retailer Requests",
		"totalAgents":         "Total Agents",
		"totalRetailers":      "Total Retailers",
		"totalStockAllocated": "Total Stock Allocated",
		"approve":             "Approve",
		"fulfill":             "Fulfill",
		"pending":             "Pending",
		"approved":            "Approved",
		"fulfilled":           "Fulfilled",
		"rejected":            "Rejected",
		"requestFrom":         "Request From",
		"manageStock":         "Manage Stock",
	},
	Hindi: {
		"appName":             "केशरवानी किराना स्टोर टेलिकॉम",
		"tagline":             "20 से अधिक वर्षों से भरोसेमंद टेलिकॉम वितरक",
		"login":               "लॉगिन",
		"register":            "पंजीकरण",
		"email":               "ईमेल",
		"password":            "पासवर्ड",
		"name":                "नाम",
		"phone":               "फोन",
		"role":                "भूमिका",
		"distributor":         "वितरक",
		"agent":               "फील्ड एजेंट",
		"retailer":            "रिटेलर/पीओएस",
		"dashboard":           "डैशबोर्ड",
		"products":            "उत्पाद",
		"requests":            "अनुरोध",
		"logout":              "लॉगआउट",
		"darkMode":            "डार्क मोड",
		"language":            "भाषा",
		"totalProducts":       "कुल उत्पाद",
		"pendingRequests":     "लंबित अनुरोध",
		"approvedRequests":    "अनुमोदित अनुरोध",
		"fulfilledRequests":   "पूर्ण अनुरोध",
		"createProduct":       "उत्पाद बनाएं",
		"requestProduct":      "उत्पाद का अनुरोध",
		"type":                "प्रकार",
		"code":                "कोड",
		"serialNumber":        "सीरियल नंबर",
		"price":               "मूल्य",
		"status":              "स्थिति",
		"sim":                 "सिम",
		"mobile":              "मोबाइल",
		"fiber":               "फाइबर",
		"quantity":            "मात्रा",
		"reason":              "कारण",
		"submit":              "जमा करें",
		"orderId":             "ऑर्डर आईडी",
		"date":                "दिनांक",
		"stock":               "स्टॉक",
		"currentStock":        "वर्तमान स्टॉक",
		"stockTransactions":   "स्टॉक लेनदेन",
		"resetStock":          "सभी स्टॉक रीसेट करें",
		"selectAgent":         "एजेंट चुनें",
		"myRequests":          "मेरे अनुरोध",
		"retailerRequests":    "रिटेलर अनुरोध",
		"totalAgents":         "कुल एजेंट",
		"totalRetailers":      "कुल रिटेलर",
		"totalStockAllocated": "कुल स्टॉक आवंटित",
		"approve":             "अनुमोदित करें",
		"fulfill":             "पूर्ण करें",
		"pending":             "लंबित",
		"approved":            "अनुमोदित",
		"fulfilled":           "पूर्ण",
		"rejected":            "अस्वीकृत",
		"requestFrom":         "से अनुरोध करें",
		"manageStock":         "स्टॉक प्रबंधन",
	},
}

// Negotiate picks a supported language code. An explicit lang wins over the
// Accept-Language header; anything unrecognised falls back to English.
func Negotiate(lang, acceptLanguage string) string {
	if lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			_, idx, conf := matcher.Match(tag)
			if conf != language.No {
				return codes[idx]
			}
		}
		return English
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return English
	}
	return codes[idx]
}

// T returns the label for key, or the key itself when the table lacks it.
func T(key, lang string) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[English]
	}
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

// Labels returns a copy of the whole table for lang.
func Labels(lang string) map[string]string {
	table, ok := tables[lang]
	if !ok {
		table = tables[English]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// Supported reports whether lang has its own table.
func Supported(lang string) bool {
	_, ok := tables[lang]
	return ok
}
