package seed

import "strings"

// DomainProfile is the expertise block embedded into sample test run
// metadata. The frontend reads these keys verbatim, so the JSON names are
// part of the contract.
type DomainProfile struct {
	DomainInfo             DomainInfo `json:"domain_info"`
	DomainExpertise        string     `json:"domain_expertise"`
	SystemPromptWithDomain string     `json:"system_prompt_with_domain"`
}

type DomainInfo struct {
	PrimaryBusinessDomain        string   `json:"primary_business_domain"`
	SpecificSubDomains           []string `json:"specific_sub_domains"`
	KeyDomainSpecificTerminology []string `json:"key_domain_specific_terminology"`
	DomainSpecificBusinessRules  []string `json:"domain_specific_business_rules"`
}

// ProfileFor picks a domain profile by project name keyword. Healthcare is
// the fallback.
func ProfileFor(projectName string) *DomainProfile {
	switch {
	case strings.Contains(projectName, "Banking"):
		return &bankingProfile
	case strings.Contains(projectName, "E-Commerce"):
		return &ecommerceProfile
	default:
		return &healthcareProfile
	}
}

var bankingProfile = DomainProfile{
	DomainInfo: DomainInfo{
		PrimaryBusinessDomain: "Banking and Financial Services",
		SpecificSubDomains: []string{
			"Account Management",
			"Transaction Processing",
			"Compliance and Regulatory",
			"Payment Systems",
		},
		KeyDomainSpecificTerminology: []string{
			"Account Balance",
			"Transaction History",
			"KYC (Know Your Customer)",
			"AML (Anti-Money Laundering)",
			"Payment Gateway",
			"Settlement Process",
		},
		DomainSpecificBusinessRules: []string{
			"All transactions must be logged for audit purposes",
			"Account balances cannot go below zero without overdraft protection",
			"Customer identity must be verified before account access",
			"Regulatory compliance must be maintained for all operations",
		},
	},
	DomainExpertise:        "You are an expert in banking and financial services domain. When analyzing requirements and generating test cases, consider regulatory compliance, security measures, transaction integrity, and audit trails.",
	SystemPromptWithDomain: "Enhanced system prompt with banking domain expertise for comprehensive test case generation.",
}

var ecommerceProfile = DomainProfile{
	DomainInfo: DomainInfo{
		PrimaryBusinessDomain: "E-Commerce and Retail",
		SpecificSubDomains: []string{
			"Product Catalog Management",
			"Shopping Cart and Checkout",
			"User Account Management",
			"Payment Processing",
			"Order Management",
		},
		KeyDomainSpecificTerminology: []string{
			"Product Catalog",
			"Shopping Cart",
			"Checkout Process",
			"Payment Gateway",
			"Order Fulfillment",
			"Inventory Management",
		},
		DomainSpecificBusinessRules: []string{
			"Products must have valid inventory before purchase",
			"Payment must be processed before order confirmation",
			"User authentication required for checkout",
			"Order tracking must be available after purchase",
		},
	},
	DomainExpertise:        "You are an expert in e-commerce and retail domain. Focus on user experience, payment security, inventory management, and order processing workflows.",
	SystemPromptWithDomain: "Enhanced system prompt with e-commerce domain expertise for comprehensive test case generation.",
}

var healthcareProfile = DomainProfile{
	DomainInfo: DomainInfo{
		PrimaryBusinessDomain: "Healthcare and Medical Services",
		SpecificSubDomains: []string{
			"Patient Management",
			"Appointment Scheduling",
			"Medical Records",
			"Provider Communication",
			"HIPAA Compliance",
		},
		KeyDomainSpecificTerminology: []string{
			"Patient Portal",
			"Medical Records",
			"Appointment Scheduling",
			"HIPAA Compliance",
			"Provider Communication",
			"Health Information",
		},
		DomainSpecificBusinessRules: []string{
			"Patient data must be HIPAA compliant",
			"Medical records require proper authorization",
			"Appointment scheduling must prevent conflicts",
			"Provider communication must be secure",
		},
	},
	DomainExpertise:        "You are an expert in healthcare domain. Ensure HIPAA compliance, patient privacy, secure communication, and proper medical record management.",
	SystemPromptWithDomain: "Enhanced system prompt with healthcare domain expertise for comprehensive test case generation.",
}
