package catalog

import "fmt"

// CategoryInfo is the display metadata of a scheme category.
type CategoryInfo struct {
	Title       string
	Description string
	Color       string
}

// RegionInfo is the display metadata of a region key.
type RegionInfo struct {
	Name        string
	Code        string
	Description string
}

const fallbackColor = "#6b7280"

var categories = map[string]CategoryInfo{
	"Health": {
		Title:       "Health & Medical",
		Description: "Healthcare schemes, medical insurance, and health-related benefits",
		Color:       "#10b981",
	},
	"Education": {
		Title:       "Education & Scholarships",
		Description: "Educational support, scholarships, and skill development programs",
		Color:       "#3b82f6",
	},
	"Agriculture": {
		Title:       "Agriculture & Farming",
		Description: "Farmer welfare schemes, agricultural support, and rural development",
		Color:       "#22c55e",
	},
	"Women": {
		Title:       "Women Empowerment",
		Description: "Women-centric schemes, empowerment programs, and gender equality initiatives",
		Color:       "#ec4899",
	},
	"Housing": {
		Title:       "Housing & Shelter",
		Description: "Affordable housing schemes, home loans, and shelter programs",
		Color:       "#f59e0b",
	},
	"Employment": {
		Title:       "Employment & Skills",
		Description: "Job creation, employment guarantee, and skill development programs",
		Color:       "#8b5cf6",
	},
	"Business": {
		Title:       "Business & Entrepreneurship",
		Description: "Business loans, startup support, and entrepreneurship schemes",
		Color:       "#06b6d4",
	},
	"Pension": {
		Title:       "Pension & Social Security",
		Description: "Pension schemes, social security, and elderly welfare programs",
		Color:       "#ef4444",
	},
	"Rural": {
		Title:       "Rural Development",
		Description: "Rural infrastructure, village development, and community programs",
		Color:       "#84cc16",
	},
	"Digital": {
		Title:       "Digital India",
		Description: "Digital services, technology initiatives, and e-governance programs",
		Color:       "#6366f1",
	},
}

// Category returns the metadata of a category key, with a generic fallback for unknown keys.
func Category(key string) CategoryInfo {
	if info, ok := categories[key]; ok {
		return info
	}
	return CategoryInfo{
		Title:       key,
		Description: fmt.Sprintf("%s related government schemes and programs", key),
		Color:       fallbackColor,
	}
}

var regions = map[string]RegionInfo{
	"central":          {Name: "Central Government", Code: "IN"},
	"andhra-pradesh":   {Name: "Andhra Pradesh", Code: "AP"},
	"assam":            {Name: "Assam", Code: "AS"},
	"bihar":            {Name: "Bihar", Code: "BR"},
	"chhattisgarh":     {Name: "Chhattisgarh", Code: "CG"},
	"goa":              {Name: "Goa", Code: "GA"},
	"gujarat":          {Name: "Gujarat", Code: "GJ"},
	"haryana":          {Name: "Haryana", Code: "HR"},
	"himachal-pradesh": {Name: "Himachal Pradesh", Code: "HP"},
	"jharkhand":        {Name: "Jharkhand", Code: "JH"},
	"karnataka":        {Name: "Karnataka", Code: "KA"},
	"kerala":           {Name: "Kerala", Code: "KL"},
	"madhya-pradesh":   {Name: "Madhya Pradesh", Code: "MP"},
	"maharashtra":      {Name: "Maharashtra", Code: "MH"},
	"manipur":          {Name: "Manipur", Code: "MN"},
	"meghalaya":        {Name: "Meghalaya", Code: "ML"},
	"mizoram":          {Name: "Mizoram", Code: "MZ"},
	"nagaland":         {Name: "Nagaland", Code: "NL"},
	"odisha":           {Name: "Odisha", Code: "OR"},
	"punjab":           {Name: "Punjab", Code: "PB"},
	"rajasthan":        {Name: "Rajasthan", Code: "RJ"},
	"sikkim":           {Name: "Sikkim", Code: "SK"},
	"tamil-nadu":       {Name: "Tamil Nadu", Code: "TN"},
	"telangana":        {Name: "Telangana", Code: "TG"},
	"tripura":          {Name: "Tripura", Code: "TR"},
	"uttar-pradesh":    {Name: "Uttar Pradesh", Code: "UP"},
	"uttarakhand":      {Name: "Uttarakhand", Code: "UK"},
	"west-bengal":      {Name: "West Bengal", Code: "WB"},
}

// Region returns the metadata of a known region key.
func Region(key string) (RegionInfo, bool) {
	info, ok := regions[key]
	if !ok {
		return RegionInfo{}, false
	}
	if key == "central" {
		info.Description = "Schemes applicable across all states and union territories"
	} else {
		info.Description = "State schemes for " + info.Name
	}
	return info, true
}
