package ai

// Prompt templates rendered with pkg/ollama.RenderTemplate. Templates that
// expect structured output spell out the JSON shape and are paired with a
// schema in schemas.go.

// winningProposalPrompt is the single proposal template used for every style.
// Style tuning never produced better win rates than this prompt, so the style
// parameter only labels the stored proposal.
const winningProposalPrompt = `# WINNING PROPOSAL GENERATION SYSTEM

## CRITICAL INSTRUCTIONS
You are an expert proposal writer with a 90% success rate on freelance platforms. Your task is to craft a proposal that IMMEDIATELY stands out from dozens of competitors and compels the client to hire this freelancer.

## IMPORTANT: INFORMATION RESTRICTION
- You MUST ONLY use the provided job description and freelancer data to generate the proposal
- Do NOT include any information that is not derived from these two sources
- Do NOT make assumptions about the client or freelancer beyond what is explicitly provided

## PROPOSAL STRUCTURE
1. **ATTENTION-GRABBING OPENER (1 sentence max):**
   - Start with Greetings Like "Hi Client" or "Hello Client" and a powerful statement that demonstrates deep understanding of the client's specific project needs
   - NO generic greetings like "I hope this finds you well" - these waste valuable attention
   - Immediately establish authority and relevance to THIS SPECIFIC project

2. **PROBLEM IDENTIFICATION (1-2 sentences):**
   - Clearly articulate the client's core challenge/pain point in their own language
   - Show insight based on what's stated in the job description
   - Demonstrate understanding of their business context from the job description

3. **SOLUTION PREVIEW (2-3 sentences):**
   - Outline a specific, tailored approach to solving their problem using freelancer's skills
   - Include 1-2 specific methodologies or techniques from freelancer's expertise
   - Mention expected outcomes/deliverables in concrete terms
   - Address any potential concerns or risks proactively

4. **PROOF OF CAPABILITY (2-3 sentences):**
   - Share ONE or TWO highly relevant past project from the freelancer data with measurable results
   - Use specific metrics and outcomes (%, $, time saved, etc.) mentioned in freelancer data
   - Explain why this experience makes the freelancer uniquely qualified for THIS project
   - NO generic claims without specifics from the freelancer data

5. **Relevant Projects and Portfolio**
   - Share relevant projects from freelancer data with one-liner descriptions and URLs if available
   - Share freelancer portfolio URL if provided in the freelancer data

6. **PERSONALIZED CLOSER (2 sentences):**
   - Include a specific, low-friction next step (call, quick question, etc.)
   - Add a personal touch that shows you've read their job posting carefully

7. **Regards**:
   - Add Best Regards and the freelancer's name and signature/tagline relevant to the job

## CRITICAL GUIDELINES
- Use ONLY the provided freelancer data to get details about projects, experience, and skills
- Use comma instead of hyphen
- Keep the ENTIRE proposal under 200 words - clients scan, not read
- Use natural, conversational language - write like a human expert, not AI, but not too formal
- Write to make a connection with the client based on the job description
- Use simple language
- Be specific to THIS job - avoid any language that could apply to multiple jobs
- Include 1-2 thoughtful questions that demonstrate expertise and engagement
- Format for easy scanning with short paragraphs and strategic spacing
- Sound confident but NOT arrogant - focus on the client's needs, not yourself
- Avoid cliches, jargon, and generic statements that don't add value
- Do NOT invent or fabricate any information not present in the provided data

## FREELANCER DATA
{{.FreelancerData}}

## JOB DESCRIPTION
{{.JobDescription}}
`

const painPointsPrompt = `# CLIENT PAIN POINT ANALYSIS

## Job Description
{{.JobDescription}}

## Analysis Instructions
Analyze this job description to identify the client's main pain points.

Extract exactly 3 main pain points that the client is trying to solve with this job posting.
Focus on specific problems, challenges, or needs that are either explicitly stated or clearly implied.
If there are no clear pain points, identify the client's most important needs instead.

Keep each pain point concise (1 sentence) but specific enough to be actionable in a proposal.

Format your response as a JSON object with a single field 'pain_points' containing an array of 3 pain points.
Example: {"pain_points": ["Pain point 1", "Pain point 2", "Pain point 3"]}
`

const humanizePrompt = `# HUMANIZE PROPOSAL

## Original Proposal
{{.ProposalText}}

## Instructions
Rewrite this proposal to sound more human, natural, and personally written while STRICTLY maintaining the original structure, format, and organization.

Make the following improvements:
1. Remove any AI-like patterns or formulaic language
2. Add some personality and warmth to the tone
3. Vary sentence structure within each section
4. Use contractions and conversational language where appropriate
5. Maintain all the key points, professional quality, and EXACT SECTION STRUCTURE

IMPORTANT RULES:
- DO NOT change section headings or titles
- DO NOT reorganize the content or change the order of sections
- DO NOT remove or add new sections
- DO NOT change the format of bullet points or numbered lists
- DO NOT alter the pricing structure or technical specifications
- KEEP all paragraphs in their original locations

The goal is to make this sound like it was written by a real person while preserving the exact structure of the original proposal.
`

const jobMatchPrompt = `# JOB MATCH ANALYSIS TASK

## Freelancer Profile
{{.FreelancerData}}

## Job Description
{{.JobDescription}}

## Analysis Instructions
Analyze how well this freelancer matches the job requirements and determine if this is a good opportunity to bid on.

Provide the following in your analysis:
1. Match Score: A numerical score from 1-100 indicating how well the freelancer's skills and experience match the job requirements
2. Key Strengths: 3-5 bullet points highlighting the freelancer's strongest qualifications for this job
3. Potential Gaps: 2-3 bullet points noting any missing skills or experience that might be concerning
4. Bid Recommendation: Clear recommendation on whether to bid (Highly Recommended, Recommended, Consider with Caution, Not Recommended)
5. Winning Strategy: Brief suggestion on how to position the proposal to win this job

Format your response as a JSON object with the following structure:
{
    "match_score": 85,
    "strengths": ["strength1", "strength2", "strength3"],
    "gaps": ["gap1", "gap2"],
    "recommendation": "Recommended",
    "strategy": "Focus on your experience with similar projects and emphasize your quick turnaround time."
}
`

const extractProfilePrompt = `You are a helpful assistant that can extract profile details from a given text in JSON format.

Data we need is:
1. Full_Name
2. ProfessionalTitle
3. Skills (Tech Skills Like React, Python and Javascript) - List
4. Experience - List of Objects
5. PortfolioURI
6. Projects - List of Objects
7. SocialLinks - List of Objects
8. About

Projects Platform Choices
1. upwork
2. fiverr
3. freelancer
4. direct_client

Projects Status Choices
1. pending
2. in_progress
3. completed
4. cancelled

Example JSON Structure:
{
    "full_name": "John Doe",
    "professional_title": "Software Engineer",
    "about": "Software Engineer with 5 years of experience in web development.",
    "skills": ["React", "Python", "JavaScript"],
    "experience": [
        {
            "company": "Tech Corp",
            "title": "Software Engineer",
            "start_date": "2022-01-01",
            "end_date": "2022-12-31"
        }
    ],
    "portfolio_uri": "https://example.com/portfolio",
    "projects": [
        {
            "title": "Project A",
            "description": "Description of Project A",
            "budget": 1000,
            "platform": "upwork",
            "status": "completed"
        }
    ],
    "social_links": [
        {
            "platform": "LinkedIn",
            "url": "https://linkedin.com/in/johndoe"
        }
    ]
}

IMPORTANT: Return ONLY the JSON object with no additional text, markdown formatting, or code blocks.

## RESUME TEXT
{{.Text}}
`

const projectSummaryPrompt = `# PROJECT SUMMARY

## Project Description
{{.Description}}

## Instructions
Summarize this project description in 1-2 sentences. Focus on what was built,
the technologies involved, and the outcome for the client. Use plain language
suitable for a portfolio listing. Return ONLY the summary text with no
headings, quotes, or extra commentary.
`
