package catalog

// organizationClasses are the badge colour classes used for each organization.
var organizationClasses = map[string]string{
	"OpenAI":      "bg-blue-100 text-blue-700 border-blue-200",
	"Anthropic":   "bg-orange-100 text-orange-700 border-orange-200",
	"Google":      "bg-green-100 text-green-700 border-green-200",
	"DeepSeek":    "bg-purple-100 text-purple-700 border-purple-200",
	"Qwen":        "bg-teal-100 text-teal-700 border-teal-200",
	"Meta":        "bg-indigo-100 text-indigo-700 border-indigo-200",
	"Mistral AI":  "bg-pink-100 text-pink-700 border-pink-200",
	"Moonshot AI": "bg-red-100 text-red-700 border-red-200",
	"Microsoft":   "bg-yellow-100 text-yellow-700 border-yellow-200",
	"xAI":         "bg-cyan-100 text-cyan-700 border-cyan-200",
	"Bytedance":   "bg-blue-100 text-blue-700 border-blue-200",
	"Baidu":       "bg-purple-100 text-purple-700 border-purple-200",
	"Zhipu AI":    "bg-teal-100 text-teal-700 border-teal-200",
	"Tencent":     "bg-red-100 text-red-700 border-purple-200",
	"StepFun":     "bg-yellow-100 text-yellow-700 border-blue-200",
}

const defaultOrganizationClass = "bg-gray-100 text-gray-700 border-gray-200"

// organizationTerminalColors are 256-colour codes for terminal badges.
var organizationTerminalColors = map[string]string{
	"OpenAI":      "33",
	"Anthropic":   "208",
	"Google":      "34",
	"DeepSeek":    "129",
	"Qwen":        "30",
	"Meta":        "61",
	"Mistral AI":  "205",
	"Moonshot AI": "160",
	"Microsoft":   "178",
	"xAI":         "44",
	"Bytedance":   "33",
	"Baidu":       "129",
	"Zhipu AI":    "30",
	"Tencent":     "160",
	"StepFun":     "178",
}

// OrganizationClass returns the CSS classes for an organization badge.
func OrganizationClass(org string) string {
	if c, ok := organizationClasses[org]; ok {
		return c
	}
	return defaultOrganizationClass
}

// OrganizationColor returns the terminal colour used for an organization.
func OrganizationColor(org string) string {
	if c, ok := organizationTerminalColors[org]; ok {
		return c
	}
	return "245"
}
