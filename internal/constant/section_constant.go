package constant

// SectionName identifies one of the fixed clinical note sections. The raw
// values double as the public identifiers accepted in the URL path and
// returned in responses.
type SectionName string

const (
	SectionPresentIllness     SectionName = "Present Illness"
	SectionPastMedicalHistory SectionName = "Past Medical History"
	SectionPhysicalExam       SectionName = "Physical Examination and Calculations"
	SectionLabsAndImaging     SectionName = "Summary of Labs and Images"
	SectionProposedDiagnosis  SectionName = "Proposed Diagnosis"
	SectionAnalysisAndPlan    SectionName = "Analysis and Plan"
	SectionQuickReport        SectionName = "Quick Report"
)

// DocumentSectionOrder is the canonical ordering of sections inside an
// exported clinical note document.
var DocumentSectionOrder = []SectionName{
	SectionPresentIllness,
	SectionPastMedicalHistory,
	SectionPhysicalExam,
	SectionLabsAndImaging,
	SectionProposedDiagnosis,
	SectionAnalysisAndPlan,
}

// ParseSectionName maps a raw identifier onto the closed section set.
func ParseSectionName(raw string) (SectionName, bool) {
	s := SectionName(raw)
	switch s {
	case SectionPresentIllness, SectionPastMedicalHistory, SectionPhysicalExam,
		SectionLabsAndImaging, SectionProposedDiagnosis, SectionAnalysisAndPlan,
		SectionQuickReport:
		return s, true
	}
	return "", false
}

// SectionPrompts holds the generation template for every section. Templates
// use {language}, {context} and {specialty} placeholders; the Analysis and
// Plan template additionally uses {previous_summaries} and
// {current_section_context}.
var SectionPrompts = map[SectionName]string{
	SectionPresentIllness: `You are a medical scribe assistant. Based on the following context, write a concise and structured 'History of Present Illness' (HPI) paragraph in {language}.
The paragraph should be in a narrative format, suitable for a clinical note in the {specialty} specialty.
Focus only on information relevant to the HPI.

Context:
{context}

Generated HPI:`,

	SectionPastMedicalHistory: `You are a medical scribe assistant. From the context below, create a list of 'Past Medical History and Risk Factors' in {language}.
Format it as a bulleted or numbered list. Include relevant surgical history, family history, and social history if mentioned. The requesting physician practices {specialty}.

Context:
{context}

Generated Past Medical History:`,

	SectionPhysicalExam: `You are a medical scribe assistant. Synthesize the provided information into a 'Physical Exam' summary in {language} for a {specialty} clinical note.
If numerical data like vital signs, range of motion, or measurements for ABI/BMI are present, extract them and perform calculations if necessary (e.g., calculate BMI if height and weight are given).
Describe any physical findings from images objectively.

Context:
{context}

Generated Physical Exam Summary:`,

	SectionLabsAndImaging: `You are a medical scribe assistant. Summarize the key findings from the lab reports and imaging studies provided in the context below. Write it in {language} for a {specialty} clinical note.
Highlight abnormal values and significant findings. Mention the name and date of the study if available.

Context:
{context}

Generated Summary of Labs and Imaging:`,

	SectionProposedDiagnosis: `You are a medical scribe assistant. Based on the context provided, generate a list of 'Proposed Diagnoses' or differential diagnoses in {language} relevant to {specialty}.
Order them from most likely to least likely if possible. Provide a brief one-sentence justification for each if the context supports it.

Context:
{context}

Generated Proposed Diagnosis:`,

	SectionAnalysisAndPlan: `You are an expert medical consultant in {specialty}. You will create a comprehensive 'Analysis and Plan' section in {language}.
First, review the summaries of the previous sections of the clinical note provided below.
Then, consider the specific information uploaded for the 'Analysis and Plan' section.

Your task is to synthesize ALL of this information into a coherent clinical assessment and a clear, actionable plan.
The plan should include recommendations for further tests, treatments, consultations, and patient education.

**Summaries from Previous Sections:**
{previous_summaries}

**Context for Current 'Analysis and Plan' Section:**
{current_section_context}

Generated Analysis and Plan:`,

	SectionQuickReport: `You are an AI assistant. Your task is to provide a quick and concise summary of the provided information in {language}.
If it's text, summarize it. If it's an audio transcript, clean it up and summarize. If it's a lab/report, extract the key findings.

Context:
{context}

Generated Quick Report:`,
}
